package gen

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/broady/smartenum/cmd/enumgen/internal/discover"
	"github.com/broady/smartenum/enumgen"
)

type Cmd struct {
	File       string `arg:"" help:"Enum definition file (YAML or JSON)." type:"existingfile"`
	Out        string `help:"Output directory (default: the definition file's directory)." short:"o" type:"path"`
	Package    string `help:"Go package name (default: from the definition, then the output directory)." short:"p"`
	NoComments bool   `help:"Omit documentation comments from generated code."`
	DumpIR     bool   `help:"Print the resolved schema as JSON instead of writing Go code." name:"dump-ir"`

	Stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	g, target, err := Prepare(c.File, c.Out, c.Package)
	if err != nil {
		return err
	}
	g.WithLogger(logger)
	if c.NoComments {
		g.WithoutComments()
	}

	schema, err := g.Schema()
	if err != nil {
		return err
	}
	if c.DumpIR {
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	if collisions := target.Collisions(schema.Identifiers()); len(collisions) > 0 {
		return fmt.Errorf("package %s already declares %s", schema.Package.Name, strings.Join(collisions, ", "))
	}

	res, err := g.ToDir(target.Dir)
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		fmt.Fprintf(stdout, "✓ Wrote %s (%d enums)\n", filepath.Join(target.Dir, filepath.FromSlash(f.Path)), res.EnumsGenerated)
	}
	return nil
}

// Prepare loads the definition at file and configures a generator for the
// package in outDir, which defaults to the definition's directory. The
// package name comes from pkg, then the definition, then the existing
// package in outDir, then the directory name.
func Prepare(file, outDir, pkg string) (*enumgen.Generator, *discover.Result, error) {
	f, err := enumgen.LoadFile(file)
	if err != nil {
		return nil, nil, err
	}
	if outDir == "" {
		outDir = filepath.Dir(file)
	}
	output := f.Output
	if output == "" {
		output = enumgen.OutputName(file)
	}

	target, err := discover.FindDir(outDir, filepath.FromSlash(output))
	if err != nil {
		return nil, nil, fmt.Errorf("discover: %w", err)
	}
	if pkg == "" {
		pkg = f.Package
	}
	switch {
	case pkg == "":
		pkg = target.Name
	case !target.New && pkg != target.Name:
		return nil, nil, fmt.Errorf("package %s does not match package %s in %s", pkg, target.Name, target.Dir)
	}

	g := enumgen.FromDefinition(f).
		Source(file).
		Package(pkg).
		Target(target.PackagePath, target.Dir).
		Output(output)
	return g, target, nil
}
