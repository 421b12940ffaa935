// Package discover inspects the Go package generated enum code will join.
//
// It resolves the package name for definitions that leave it out and lists
// the identifiers the package already declares, so that generated names can
// be checked for collisions before anything is written.
package discover

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Result describes the target package.
type Result struct {
	Name        string // package name
	PackagePath string
	ModulePath  string
	ModuleDir   string // directory containing go.mod
	Dir         string // directory containing the package
	New         bool   // no Go files yet; Name is derived from Dir

	// Declared lists package-scope identifiers, sorted, excluding those
	// declared in the file passed to FindDir as generated.
	Declared []string
}

// Find inspects the package in directory dir.
func Find(dir string) (*Result, error) {
	return FindDir(dir, "")
}

// FindDir is like Find but ignores declarations in generated, the path of
// the file about to be regenerated.
func FindDir(dir, generated string) (*Result, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}
	if _, err := os.Stat(absDir); errors.Is(err, fs.ErrNotExist) {
		return &Result{Name: DefaultName(absDir), Dir: absDir, New: true}, nil
	}
	if generated != "" && !filepath.IsAbs(generated) {
		generated = filepath.Join(absDir, generated)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedSyntax | packages.NeedModule,
		Dir: absDir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", absDir, len(pkgs))
	}
	pkg := pkgs[0]

	result := &Result{
		Name:        pkg.Name,
		PackagePath: pkg.PkgPath,
		Dir:         absDir,
	}
	if pkg.Module != nil {
		result.ModulePath = pkg.Module.Path
		result.ModuleDir = pkg.Module.Dir
	}

	// A directory without Go files is a new package: name it after the
	// directory.
	if len(pkg.GoFiles) == 0 {
		result.Name = DefaultName(absDir)
		result.New = true
		return result, nil
	}
	// Import and type errors are expected while generated code is stale or
	// missing; only a package without a name is unusable.
	if pkg.Name == "" {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
		}
		return nil, fmt.Errorf("no package name in %s", absDir)
	}

	for _, file := range pkg.Syntax {
		if generated != "" && sameFile(pkg.Fset.File(file.Pos()).Name(), generated) {
			continue
		}
		result.Declared = append(result.Declared, declaredNames(file)...)
	}
	slices.Sort(result.Declared)
	result.Declared = slices.Compact(result.Declared)
	return result, nil
}

// Collisions returns the names in generated that the package already
// declares.
func (r *Result) Collisions(generated []string) []string {
	var out []string
	for _, name := range generated {
		if _, found := slices.BinarySearch(r.Declared, name); found {
			out = append(out, name)
		}
	}
	return out
}

// DefaultName derives a package name from a directory path: the last path
// element, lower-cased, with characters that cannot appear in an
// identifier removed.
func DefaultName(dir string) string {
	base := strings.ToLower(filepath.Base(dir))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9' && b.Len() > 0:
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || token.IsKeyword(name) {
		return "enums"
	}
	return name
}

// declaredNames returns the package-scope identifiers a file declares.
func declaredNames(file *ast.File) []string {
	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name != "init" && d.Name.Name != "_" {
				names = append(names, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						if n.Name != "_" {
							names = append(names, n.Name)
						}
					}
				}
			}
		}
	}
	return names
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
