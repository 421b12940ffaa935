package ir

import "github.com/broady/smartenum/namelist"

// EnumDescriptor represents one enumeration definition.
type EnumDescriptor struct {
	// Name is the Go type name.
	Name GoIdentifier

	// Underlying is the integer type every member value is stored as.
	Underlying *PrimitiveDescriptor

	// Prefix is prepended to member names to form constant names.
	Prefix string

	// Members contains every declared symbol, in declaration order.
	Members []EnumMember

	// Items lists member names in iteration order. Entries may omit,
	// reorder, or repeat members.
	Items []string

	// Names holds the display names aligned to Items.
	Names NameTable

	// FastString requests a switch-based String method instead of a table
	// lookup.
	FastString bool

	// Documentation for this type.
	Documentation Documentation

	// Source location in the definition file.
	Source Source
}

// Member returns the member with the given symbol name.
func (d *EnumDescriptor) Member(name string) (*EnumMember, bool) {
	for i := range d.Members {
		if d.Members[i].Name == name {
			return &d.Members[i], true
		}
	}
	return nil, false
}

// ConstName returns the Go constant name of the member.
func (d *EnumDescriptor) ConstName(m *EnumMember) string {
	return d.Prefix + m.Name
}

// DisplayNames returns the name table fitted to the item count.
func (d *EnumDescriptor) DisplayNames() []string {
	return d.Names.Table(len(d.Items))
}

// EnumMember represents a single declared symbol.
type EnumMember struct {
	// Name is the symbol name, without prefix.
	Name string

	// Literal is the explicit value as written in the definition file.
	// Empty when the value is implicit.
	Literal string

	// Value is the resolved value: int64 for signed underlying types,
	// uint64 for unsigned ones. Nil until the schema is resolved.
	Value any

	// Documentation for this member.
	Documentation Documentation

	// Source location in the definition file.
	Source Source
}

// Explicit reports whether the member's value was given in the definition.
func (m *EnumMember) Explicit() bool { return m.Literal != "" }

// NameTable is the display-name source of an enum: a comma-separated
// literal, a pre-split list, or neither.
type NameTable struct {
	Literal *string
	List    []string
}

// IsZero reports whether no names were supplied.
func (t NameTable) IsZero() bool {
	return t.Literal == nil && t.List == nil
}

// Table returns the display names fitted to n entries.
func (t NameTable) Table(n int) []string {
	switch {
	case t.Literal != nil:
		return namelist.ParseN(*t.Literal, n)
	default:
		return namelist.Fit(t.List, n)
	}
}

// Len returns the number of names supplied before fitting.
func (t NameTable) Len() int {
	if t.Literal != nil {
		return len(namelist.Parse(*t.Literal))
	}
	return len(t.List)
}
