package smartenum

// MarshalText returns the display name of v. Values that are not active
// items, or whose display name is blank, cannot be written as text and
// fail with code not_found.
func (e *Enum[T]) MarshalText(v T) ([]byte, error) {
	s := e.String(v)
	if s == "" {
		return nil, Errorf(CodeNotFound, "enum %s: value %d has no display name", e.decl.name, v).
			WithDetails(map[string]any{"enum": e.decl.name, "value": v})
	}
	return []byte(s), nil
}

// UnmarshalText stores the item named text in dst. Empty text is rejected
// even when a blank table entry exists, so that MarshalText and
// UnmarshalText agree on which values have a text form. dst is left
// untouched on error.
func (e *Enum[T]) UnmarshalText(dst *T, text []byte) error {
	if len(text) == 0 {
		return Errorf(CodeInvalid, "enum %s: empty name", e.decl.name).
			WithDetail("enum", e.decl.name)
	}
	v, err := e.Lookup(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
