// Package ir defines the intermediate representation of enumeration
// definitions. Loaders build a Schema; generators turn it into source code.
package ir

// GoIdentifier represents a named Go entity.
type GoIdentifier struct {
	// Name is the identifier as it appears in Go source.
	Name string
}

// Documentation holds documentation comments attached to a definition.
type Documentation struct {
	// Summary is the first sentence, suitable for brief descriptions.
	Summary string

	// Body is the complete documentation text, including the summary.
	Body string

	// Deprecated is non-nil if the definition is marked deprecated.
	// The string value is the deprecation message (may be empty).
	Deprecated *string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == "" && d.Deprecated == nil
}

// Source represents a location in a definition file.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// Warning represents a non-fatal issue encountered while analyzing a schema.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// TypeName is the enum that triggered the warning, if applicable.
	TypeName string
}

// Warning codes.
const (
	WarnUnnamedItem   = "unnamed_item"   // active item with a blank display name
	WarnDuplicateItem = "duplicate_item" // symbol listed more than once; later positions are unreachable by String
	WarnShadowedName  = "shadowed_name"  // display name repeated; later positions are unreachable by Parse
	WarnUnusedNames   = "unused_names"   // more display names than items
)

// PackageInfo describes the Go package generated code belongs to. Path and
// Dir are filled in when the target package has been located on disk.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string `json:",omitempty"`

	// Name is the package name (e.g., "bar").
	Name string

	// Dir is the filesystem directory, if known.
	Dir string `json:",omitempty"`
}
