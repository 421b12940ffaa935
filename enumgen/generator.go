package enumgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/broady/smartenum/enumgen/golang"
	"github.com/broady/smartenum/enumgen/ir"
	"github.com/broady/smartenum/enumgen/sink"
)

// Generator provides a fluent API for code generation.
// Create with FromFile() or FromSchema() and configure with method chaining.
//
// Example:
//
//	enumgen.FromFile("animals.yaml").
//	    Package("farm").
//	    ToDir("./farm")
type Generator struct {
	path   string
	source string
	file   *File
	schema *ir.Schema

	pkg      string
	pkgPath  string
	pkgDir   string
	output   string
	comments bool
	logger   *slog.Logger
}

// FromFile creates a Generator for the definition file at path. The file is
// read when a terminal operation runs.
func FromFile(path string) *Generator {
	return &Generator{path: path, source: path, comments: true}
}

// FromDefinition creates a Generator for an already decoded definition.
func FromDefinition(f *File) *Generator {
	return &Generator{file: f, comments: true}
}

// FromSchema creates a Generator for a hand-built schema.
func FromSchema(s *ir.Schema) *Generator {
	return &Generator{schema: s, comments: true}
}

// Package sets the Go package name, overriding the one in the definition.
func (g *Generator) Package(name string) *Generator {
	g.pkg = name
	return g
}

// Target records where the generated package lives: its import path and
// directory. Either may be empty when unknown.
func (g *Generator) Target(importPath, dir string) *Generator {
	g.pkgPath = importPath
	g.pkgDir = dir
	return g
}

// Output sets the generated file path relative to the output directory,
// overriding the one in the definition.
func (g *Generator) Output(path string) *Generator {
	g.output = path
	return g
}

// Source names the definition file the schema came from. It appears in the
// generated header and, without an explicit output, names the output file.
// FromFile sets it to the file path.
func (g *Generator) Source(path string) *Generator {
	g.source = path
	return g
}

// WithoutComments omits documentation comments from generated code.
func (g *Generator) WithoutComments() *Generator {
	g.comments = false
	return g
}

// WithLogger sets the logger for progress and warnings. Defaults to
// slog.Default().
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// Result describes a completed generation.
type Result struct {
	*golang.GenerateResult

	// Content holds the generated files keyed by path. Set by Generate only.
	Content map[string][]byte
}

// ToDir generates files into dir.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	return g.ToSink(context.Background(), sink.NewFilesystemSink(dir))
}

// Generate returns generated files in memory without writing to disk.
// Use ToDir() to write files to disk instead.
func (g *Generator) Generate() (*Result, error) {
	mem := sink.NewMemorySink()
	res, err := g.ToSink(context.Background(), mem)
	if err != nil {
		return nil, err
	}
	res.Content = mem.Files()
	return res, nil
}

// ToSink generates files into out.
func (g *Generator) ToSink(ctx context.Context, out sink.OutputSink) (*Result, error) {
	logger := g.logger
	if logger == nil {
		logger = slog.Default()
	}

	schema, cfg, err := g.prepare()
	if err != nil {
		return nil, err
	}

	gen := &golang.GoGenerator{}
	res, err := gen.Generate(ctx, schema, golang.GenerateOptions{Sink: out, Config: cfg})
	if err != nil {
		return nil, err
	}

	for _, w := range res.Warnings {
		attrs := []any{"code", w.Code, "enum", w.TypeName}
		if w.Source != nil {
			attrs = append(attrs, "line", w.Source.Line)
		}
		logger.Warn(w.Message, attrs...)
	}
	for _, f := range res.Files {
		logger.Info("generated file", "path", f.Path, "bytes", f.Size, "enums", res.EnumsGenerated)
	}
	return &Result{GenerateResult: res}, nil
}

// Schema returns the validated schema with member values resolved and
// warnings recorded, without generating code.
func (g *Generator) Schema() (*ir.Schema, error) {
	schema, _, err := g.prepare()
	if err != nil {
		return nil, err
	}
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}
	if err := schema.Resolve(); err != nil {
		return nil, err
	}
	schema.Analyze()
	return schema, nil
}

// prepare loads the schema and resolves the package name and output path.
func (g *Generator) prepare() (*ir.Schema, golang.Config, error) {
	cfg := golang.Config{EmitComments: g.comments}
	if g.source != "" {
		cfg.Source = filepath.Base(g.source)
	}

	f := g.file
	if f == nil && g.path != "" {
		var err error
		if f, err = LoadFile(g.path); err != nil {
			return nil, cfg, err
		}
	}

	schema := g.schema
	switch {
	case f != nil:
		var err error
		if schema, err = f.Schema(cfg.Source); err != nil {
			return nil, cfg, err
		}
		cfg.Output = f.Output
	case schema == nil:
		return nil, cfg, errors.New("no definition file or schema")
	}

	if g.pkg != "" {
		schema.Package.Name = g.pkg
	}
	if schema.Package.Name == "" {
		return nil, cfg, errors.New("package name is required: set it in the definition or with Package()")
	}
	if g.pkgPath != "" {
		schema.Package.Path = g.pkgPath
	}
	if g.pkgDir != "" {
		schema.Package.Dir = g.pkgDir
	}

	if g.output != "" {
		cfg.Output = g.output
	}
	if cfg.Output == "" && g.source != "" {
		cfg.Output = OutputName(g.source)
	}
	return schema, cfg, nil
}
