package gen

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const definition = `package: farm
enums:
  - name: Animal
    doc: Animal is a farm animal.
    symbols: [Cat, Dog, Chicken]
    strings: "cat, dog, chicken"
`

func writeDefinition(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "animals.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestCmd_Run(t *testing.T) {
	root := t.TempDir()
	def := writeDefinition(t, root, definition)
	out := filepath.Join(root, "farm")

	var stdout bytes.Buffer
	cmd := &Cmd{File: def, Out: out, Stdout: &stdout}
	if err := cmd.Run(quietLogger()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	src, err := os.ReadFile(filepath.Join(out, "animals_enum.go"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"// source: animals.yaml", "package farm", "func ParseAnimal(s string) (Animal, bool)"} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated source missing %q", want)
		}
	}
	if !strings.Contains(stdout.String(), "✓ Wrote ") {
		t.Errorf("stdout = %q, want a wrote line", stdout.String())
	}
}

func TestCmd_Run_PackageFromDirectory(t *testing.T) {
	root := t.TempDir()
	def := writeDefinition(t, root, strings.TrimPrefix(definition, "package: farm\n"))
	out := filepath.Join(root, "livestock")

	cmd := &Cmd{File: def, Out: out, NoComments: true, Stdout: &bytes.Buffer{}}
	if err := cmd.Run(quietLogger()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	src, err := os.ReadFile(filepath.Join(out, "animals_enum.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "package livestock") {
		t.Errorf("package not derived from directory:\n%s", src)
	}
	if strings.Contains(string(src), "// Animal is a farm animal.") {
		t.Error("comments emitted with --no-comments")
	}
}

func TestCmd_Run_DumpIR(t *testing.T) {
	root := t.TempDir()
	def := writeDefinition(t, root, definition)
	out := filepath.Join(root, "farm")

	var stdout bytes.Buffer
	cmd := &Cmd{File: def, Out: out, DumpIR: true, Stdout: &stdout}
	if err := cmd.Run(quietLogger()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var dump struct {
		Package struct{ Name, Path, Dir string }
		Enums   []struct {
			Kind    string `json:"kind"`
			Members []struct{ Name string }
		}
	}
	if err := json.Unmarshal(stdout.Bytes(), &dump); err != nil {
		t.Fatalf("dump is not JSON: %v\n%s", err, stdout.String())
	}
	if dump.Package.Name != "farm" || len(dump.Enums) != 1 || dump.Enums[0].Kind != "enum" {
		t.Errorf("unexpected dump: %+v", dump)
	}
	if dump.Package.Dir != out {
		t.Errorf("Package.Dir = %q, want %q", dump.Package.Dir, out)
	}
	if dump.Package.Path != "" {
		t.Errorf("Package.Path = %q, want empty for a directory outside any module", dump.Package.Path)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("--dump-ir wrote files")
	}
}

func TestCmd_Run_Errors(t *testing.T) {
	root := t.TempDir()
	def := writeDefinition(t, root, `enums:
  - name: Animal
    symbols: [Cat, Dog]
    items: [Cat, Horse]
`)
	cmd := &Cmd{File: def, Out: filepath.Join(root, "farm"), Stdout: &bytes.Buffer{}}
	err := cmd.Run(quietLogger())
	if err == nil || !strings.Contains(err.Error(), "undeclared symbol") {
		t.Errorf("Run() error = %v, want undeclared symbol", err)
	}

	cmd = &Cmd{File: filepath.Join(root, "missing.yaml"), Stdout: &bytes.Buffer{}}
	if err := cmd.Run(quietLogger()); err == nil {
		t.Error("Run() succeeded for a missing definition")
	}
}

func TestPrepare_ExistingPackage(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	t.Setenv("GOWORK", "off")

	root := t.TempDir()
	files := map[string]string{
		"go.mod":  "module example.com/farm\n\ngo 1.21\n",
		"barn.go": "package farm\n\nfunc ParseAnimal(s string) int { return 0 }\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	def := writeDefinition(t, root, strings.TrimPrefix(definition, "package: farm\n"))

	if _, _, err := Prepare(def, "", "barnyard"); err == nil || !strings.Contains(err.Error(), "does not match package farm") {
		t.Errorf("Prepare() error = %v, want package mismatch", err)
	}

	g, target, err := Prepare(def, "", "")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	schema, err := g.Schema()
	if err != nil {
		t.Fatal(err)
	}
	if schema.Package.Name != "farm" || schema.Package.Path != "example.com/farm" {
		t.Errorf("package = %+v, want farm at example.com/farm", schema.Package)
	}
	if schema.Package.Dir != target.Dir {
		t.Errorf("Package.Dir = %q, want %q", schema.Package.Dir, target.Dir)
	}

	cmd := &Cmd{File: def, Stdout: &bytes.Buffer{}}
	err = cmd.Run(quietLogger())
	if err == nil || !strings.Contains(err.Error(), "already declares ParseAnimal") {
		t.Errorf("Run() error = %v, want collision on ParseAnimal", err)
	}
	if got := target.Collisions([]string{"ParseAnimal"}); len(got) != 1 {
		t.Errorf("Collisions() = %v", got)
	}
}
