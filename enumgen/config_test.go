package enumgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/broady/smartenum"
)

func TestLoadFile_YAML(t *testing.T) {
	f, err := LoadFile("testdata/animals.yaml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if f.Package != "farm" {
		t.Errorf("Package = %q, want farm", f.Package)
	}
	if len(f.Enums) != 2 {
		t.Fatalf("len(Enums) = %d, want 2", len(f.Enums))
	}

	animal := f.Enums[0]
	if len(animal.Symbols) != 4 {
		t.Fatalf("Animal symbols = %d, want 4", len(animal.Symbols))
	}
	if dog := animal.Symbols[1]; dog.Name != "Dog" || dog.Value != "5" || dog.Doc != "Dog guards the farm." {
		t.Errorf("Dog = %+v", dog)
	}
	if cat := animal.Symbols[0]; cat.Name != "Cat" || cat.Value != "" {
		t.Errorf("Cat = %+v", cat)
	}
	if animal.Symbols[3].Deprecated == nil {
		t.Error("Horse should be deprecated")
	}
	if animal.line != 3 {
		t.Errorf("Animal line = %d, want 3", animal.line)
	}

	level := f.Enums[1]
	if level.Prefix == nil || *level.Prefix != "" {
		t.Errorf("level prefix = %v, want explicit empty", level.Prefix)
	}
	if level.Symbols[1].Value != "0x10" {
		t.Errorf("High value = %q, want literal text 0x10", level.Symbols[1].Value)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	f, err := LoadFile("testdata/animals.json")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if f.Output != "zz_animal.go" {
		t.Errorf("Output = %q", f.Output)
	}
	if got := f.Enums[0].Symbols[1]; got.Name != "Dog" || got.Value != "5" {
		t.Errorf("Dog = %+v", got)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("testdata/nope.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"no enums", "package: farm\n", "enums: required"},
		{"bad package", "package: my-farm\nenums: [{name: A, symbols: [X]}]\n", `package: "my-farm" is not a Go identifier`},
		{"no symbols", "enums: [{name: A}]\n", "enums[0].symbols: required"},
		{"bad enum name", "enums: [{name: 9lives, symbols: [X]}]\n", "enums[0].name"},
		{"bad type", "enums: [{name: A, type: float64, symbols: [X]}]\n", "enums[0].type: must be one of"},
		{"bad symbol", "enums: [{name: A, symbols: [\"two words\"]}]\n", "enums[0].symbols[0].name"},
		{"blank item", "enums: [{name: A, symbols: [X], items: [\"\"]}]\n", "enums[0].items[0]: required"},
		{"strings and names", "enums: [{name: A, symbols: [X], strings: x, names: [x]}]\n", "enums[0].names: cannot be combined with strings"},
		{"bad output", "output: enum.txt\nenums: [{name: A, symbols: [X]}]\n", "output: must end with .go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !errors.Is(err, smartenum.ErrInvalid) {
				t.Errorf("error %v should carry code invalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"unknown top-level key", "pakage: farm\nenums: [{name: A, symbols: [X]}]\n", "pakage"},
		{"symbol is a list", "enums: [{name: A, symbols: [[X]]}]\n", "symbol must be a name or a mapping"},
		{"value is a list", "enums: [{name: A, symbols: [{name: X, value: [1]}]}]\n", "value must be an integer literal"},
		{"value is empty", "enums: [{name: A, symbols: [{name: X, value: \"\"}]}]\n", "value must be an integer literal"},
		{"unknown enum key", "enums: [{name: A, symbols: [X, Y], itms: [Y]}]\n", `line 1: unknown key "itms"`},
		{"unknown symbol key", "enums:\n  - name: A\n    symbols:\n      - {name: X, vlaue: 3}\n", `line 4: unknown key "vlaue"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFile_Schema(t *testing.T) {
	f, err := LoadFile("testdata/animals.yaml")
	if err != nil {
		t.Fatal(err)
	}
	s, err := f.Schema("animals.yaml")
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	animal := s.FindEnum("Animal")
	if animal == nil {
		t.Fatal("Animal not in schema")
	}
	if animal.Prefix != "Animal" {
		t.Errorf("default prefix = %q, want Animal", animal.Prefix)
	}
	if got := animal.Underlying.GoType(); got != "int64" {
		t.Errorf("underlying = %s, want int64", got)
	}
	if animal.Names.Literal == nil || *animal.Names.Literal != "cat, dog, chicken" {
		t.Errorf("names = %+v", animal.Names)
	}
	if animal.Documentation.Summary != "Animal is a farm animal." {
		t.Errorf("summary = %q", animal.Documentation.Summary)
	}
	if animal.Source.File != "animals.yaml" || animal.Source.Line != 3 {
		t.Errorf("source = %+v", animal.Source)
	}
	if horse, _ := animal.Member("Horse"); horse.Documentation.Deprecated == nil {
		t.Error("Horse deprecation lost")
	}

	level := s.FindEnum("level")
	if level.Prefix != "" {
		t.Errorf("explicit empty prefix = %q", level.Prefix)
	}
	if strings.Join(level.Items, ",") != "Low,High" {
		t.Errorf("default items = %v, want every symbol", level.Items)
	}
	if strings.Join(level.Names.List, ",") != "low,high" {
		t.Errorf("names = %v", level.Names.List)
	}

	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	high, _ := level.Member("High")
	if high.Value != uint64(16) {
		t.Errorf("High = %#v, want uint64(16)", high.Value)
	}
}

func TestFile_SchemaDefaultNames(t *testing.T) {
	f, err := Parse([]byte("enums: [{name: A, symbols: [X, Y, Z], items: [Z, X]}]\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := f.Schema("")
	if err != nil {
		t.Fatal(err)
	}
	e := s.Enums[0]
	if got := strings.Join(e.DisplayNames(), ","); got != "Z,X" {
		t.Errorf("default display names = %s, want the item symbols", got)
	}
	if e.Source.Line != 1 || e.Source.File != "" {
		t.Errorf("source = %+v", e.Source)
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"animals.yaml":           "animals_enum.go",
		"defs/colors.json":       "colors_enum.go",
		"/abs/path/levels.enums": "levels_enum.go",
	}
	for in, want := range tests {
		if got := OutputName(in); got != want {
			t.Errorf("OutputName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParse_ExplicitValues(t *testing.T) {
	f, err := Parse([]byte(`
enums:
  - name: Code
    type: uint16
    symbols:
      - {name: OK, value: 200}
      - name: Moved
        value: 0x12D
      - Found
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var got []string
	for _, sym := range f.Enums[0].Symbols {
		got = append(got, sym.Name+"="+sym.Value)
	}
	if want := "OK=200 Moved=0x12D Found="; strings.Join(got, " ") != want {
		t.Errorf("symbols = %q, want %q", strings.Join(got, " "), want)
	}
}
