// Package golang turns an enum schema into Go source that declares each
// type, its constants, and the bound smartenum metadata.
package golang

import (
	"context"

	"github.com/broady/smartenum/enumgen/ir"
	"github.com/broady/smartenum/enumgen/sink"
)

// DefaultImportPath is the import path of the runtime package generated
// code depends on.
const DefaultImportPath = "github.com/broady/smartenum"

// DefaultOutput is the file written when Config.Output is empty.
const DefaultOutput = "enum_gen.go"

// Generator transforms an enum schema into target language source code.
type Generator interface {
	// Name returns the generator's identifier.
	Name() string

	// Generate produces source code for the given schema.
	Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config Config
}

// Config controls the shape of the generated file.
type Config struct {
	// Output is the slash-separated path of the generated file, relative to
	// the sink root.
	Output string

	// ImportPath overrides DefaultImportPath. The package it names must be
	// called smartenum.
	ImportPath string

	// Source names the definition file in the generated header. Optional.
	Source string

	// EmitComments includes documentation comments in output.
	EmitComments bool
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// EnumsGenerated is the count of enums emitted.
	EnumsGenerated int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}
