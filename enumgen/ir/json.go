package ir

import "encoding/json"

// JSON serialization support for IR types, used by `enumgen gen --dump-ir`.
// Descriptors include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for EnumDescriptor.
func (d *EnumDescriptor) MarshalJSON() ([]byte, error) {
	type Alias EnumDescriptor
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  "enum",
		Alias: (*Alias)(d),
	})
}

// MarshalJSON implements json.Marshaler for PrimitiveDescriptor.
func (d *PrimitiveDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string `json:"kind"`
		PrimitiveKind string `json:"primitiveKind"`
		BitSize       int    `json:"bitSize,omitempty"`
		GoType        string `json:"goType"`
	}{
		Kind:          "primitive",
		PrimitiveKind: d.PrimitiveKind.String(),
		BitSize:       d.BitSize,
		GoType:        d.GoType(),
	})
}

// MarshalJSON implements json.Marshaler for NameTable. A literal table is
// written as a string, a list as an array, and no table as null.
func (t NameTable) MarshalJSON() ([]byte, error) {
	switch {
	case t.Literal != nil:
		return json.Marshal(*t.Literal)
	case t.List != nil:
		return json.Marshal(t.List)
	default:
		return []byte("null"), nil
	}
}
