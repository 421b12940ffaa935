package check

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/broady/smartenum/cmd/enumgen/internal/gen"
	"github.com/broady/smartenum/enumgen/sink"
)

// ErrStale is returned when generated files on disk differ from what the
// definition produces.
var ErrStale = errors.New("generated code is out of date; run enumgen gen")

type Cmd struct {
	File    string `arg:"" help:"Enum definition file (YAML or JSON)." type:"existingfile"`
	Out     string `help:"Directory holding the generated code (default: the definition file's directory)." short:"o" type:"path"`
	Package string `help:"Go package name (default: from the definition, then the output directory)." short:"p"`

	Stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	g, target, err := gen.Prepare(c.File, c.Out, c.Package)
	if err != nil {
		return err
	}
	res, err := g.WithLogger(logger).Generate()
	if err != nil {
		return err
	}

	stale, err := Compare(context.Background(), stdout, sink.NewFilesystemSink(target.Dir), res.Content)
	if err != nil {
		return err
	}
	if stale {
		return ErrStale
	}
	fmt.Fprintf(stdout, "✓ %d enums up to date\n", res.EnumsGenerated)
	return nil
}

// Compare reports whether any file in want differs from its copy in have,
// writing a unified diff to w for each one that does.
func Compare(ctx context.Context, w io.Writer, have sink.Source, want map[string][]byte) (bool, error) {
	stale := false
	for _, path := range slices.Sorted(maps.Keys(want)) {
		current, err := have.ReadFile(ctx, path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(w, "✗ %s is missing\n", path)
			stale = true
			continue
		case err != nil:
			return false, err
		case bytes.Equal(current, want[path]):
			continue
		}

		stale = true
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(current)),
			B:        difflib.SplitLines(string(want[path])),
			FromFile: path + " (on disk)",
			ToFile:   path + " (generated)",
			Context:  3,
		})
		if err != nil {
			return false, fmt.Errorf("diff %s: %w", path, err)
		}
		fmt.Fprintf(w, "✗ %s is out of date\n%s", path, diff)
	}
	return stale, nil
}
