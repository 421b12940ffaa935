// Package enumgen generates Go source for smartenum enumerations from a
// definition file or a hand-built schema.
package enumgen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/smartenum"
	"github.com/broady/smartenum/enumgen/ir"
)

// File is a definition file. YAML and JSON are both accepted.
type File struct {
	// Package is the Go package name of the generated file. Optional when
	// the caller supplies one.
	Package string `yaml:"package" validate:"omitempty,goident"`

	// Output is the slash-separated path of the generated file relative to
	// the output directory.
	Output string `yaml:"output" validate:"omitempty,endswith=.go"`

	Enums []EnumConfig `yaml:"enums" validate:"required,min=1,dive"`
}

// EnumConfig defines one enumeration.
type EnumConfig struct {
	Name string `yaml:"name" validate:"required,goident"`

	// Type is the underlying integer type. Defaults to int.
	Type string `yaml:"type" validate:"omitempty,oneof=int int8 int16 int32 int64 uint uint8 uint16 uint32 uint64 uintptr byte rune"`

	Doc        string  `yaml:"doc"`
	Deprecated *string `yaml:"deprecated"`

	// Prefix is prepended to symbol names to form constant names. Defaults
	// to Name; set it to "" for bare constant names.
	Prefix *string `yaml:"prefix"`

	Symbols []SymbolConfig `yaml:"symbols" validate:"required,min=1,dive"`

	// Items lists symbol names in iteration order. Defaults to every symbol
	// in declaration order.
	Items []string `yaml:"items" validate:"omitempty,dive,required"`

	// Strings is a comma-separated display-name literal.
	Strings *string `yaml:"strings"`

	// Names is a pre-split display-name list. When neither Strings nor
	// Names is set, each item displays as its symbol name.
	Names []string `yaml:"names" validate:"excluded_with=Strings"`

	FastString bool `yaml:"fast_string"`

	line, column int
}

// UnmarshalYAML rejects unknown keys and records the enum's position in
// the file.
func (c *EnumConfig) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, enumKeys); err != nil {
		return err
	}
	type plain EnumConfig
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.line, c.column = node.Line, node.Column
	return nil
}

// SymbolConfig declares one symbol. In a file it is either a bare name or
// a mapping with name, value and doc keys.
type SymbolConfig struct {
	Name string `yaml:"name" validate:"required,goident"`

	// Value is the explicit value exactly as written; empty when implicit.
	Value string `yaml:"value"`

	Doc        string  `yaml:"doc"`
	Deprecated *string `yaml:"deprecated"`

	line, column int
}

// UnmarshalYAML accepts a scalar name or a mapping.
func (s *SymbolConfig) UnmarshalYAML(node *yaml.Node) error {
	s.line, s.column = node.Line, node.Column
	switch node.Kind {
	case yaml.ScalarNode:
		s.Name = node.Value
		return nil
	case yaml.MappingNode:
		if err := checkKeys(node, symbolKeys); err != nil {
			return err
		}
		var aux struct {
			Name       string    `yaml:"name"`
			Value      yaml.Node `yaml:"value"`
			Doc        string    `yaml:"doc"`
			Deprecated *string   `yaml:"deprecated"`
		}
		if err := node.Decode(&aux); err != nil {
			return err
		}
		s.Name, s.Doc, s.Deprecated = aux.Name, aux.Doc, aux.Deprecated
		if aux.Value.Kind != 0 {
			if aux.Value.Kind != yaml.ScalarNode || aux.Value.Value == "" {
				return fmt.Errorf("line %d: symbol %s: value must be an integer literal", aux.Value.Line, aux.Name)
			}
			s.Value = aux.Value.Value
		}
		return nil
	default:
		return fmt.Errorf("line %d: symbol must be a name or a mapping", node.Line)
	}
}

var (
	enumKeys   = yamlKeys(reflect.TypeFor[EnumConfig]())
	symbolKeys = yamlKeys(reflect.TypeFor[SymbolConfig]())
)

// yamlKeys returns the mapping keys a struct type accepts.
func yamlKeys(t reflect.Type) []string {
	var keys []string
	for i := range t.NumField() {
		if name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ","); name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

// checkKeys rejects mapping keys outside allowed. Nested decoders do not
// inherit KnownFields from the file decoder.
func checkKeys(node *yaml.Node, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return ir.IsIdentifier(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// LoadFile reads and validates the definition file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a definition file.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks field-level constraints. The returned error is a
// *smartenum.Error with code invalid and one detail per failing field.
func (f *File) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make(map[string]any, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		field := strings.TrimPrefix(ve.Namespace(), "File.")
		msg := formatValidationError(ve)
		details[field] = msg
		messages = append(messages, field+": "+msg)
	}
	return &smartenum.Error{
		Code:    smartenum.CodeInvalid,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "goident":
		return fmt.Sprintf("%q is not a Go identifier", ve.Value())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "endswith":
		return fmt.Sprintf("must end with %s", ve.Param())
	case "excluded_with":
		return fmt.Sprintf("cannot be combined with %s", strings.ToLower(ve.Param()))
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// Schema converts the file to the generator's intermediate representation.
// source names the file in positions and may be empty.
func (f *File) Schema(source string) (*ir.Schema, error) {
	s := &ir.Schema{Package: ir.PackageInfo{Name: f.Package}}
	for i := range f.Enums {
		e, err := f.Enums[i].descriptor(source)
		if err != nil {
			return nil, err
		}
		s.AddEnum(e)
	}
	return s, nil
}

func (c *EnumConfig) descriptor(source string) (*ir.EnumDescriptor, error) {
	underlying, err := ir.ParseIntType(c.Type)
	if err != nil {
		return nil, fmt.Errorf("enum %s: %w", c.Name, err)
	}
	prefix := c.Name
	if c.Prefix != nil {
		prefix = *c.Prefix
	}

	e := &ir.EnumDescriptor{
		Name:          ir.GoIdentifier{Name: c.Name},
		Underlying:    underlying,
		Prefix:        prefix,
		FastString:    c.FastString,
		Documentation: documentation(c.Doc, c.Deprecated),
		Source:        position(source, c.line, c.column),
	}
	for _, sym := range c.Symbols {
		e.Members = append(e.Members, ir.EnumMember{
			Name:          sym.Name,
			Literal:       sym.Value,
			Documentation: documentation(sym.Doc, sym.Deprecated),
			Source:        position(source, sym.line, sym.column),
		})
	}

	e.Items = c.Items
	if e.Items == nil {
		for _, sym := range c.Symbols {
			e.Items = append(e.Items, sym.Name)
		}
	}

	switch {
	case c.Strings != nil:
		e.Names.Literal = c.Strings
	case c.Names != nil:
		e.Names.List = c.Names
	default:
		e.Names.List = e.Items
	}
	return e, nil
}

func position(file string, line, column int) ir.Source {
	if line == 0 {
		return ir.Source{}
	}
	return ir.Source{File: file, Line: line, Column: column}
}

func documentation(doc string, deprecated *string) ir.Documentation {
	doc = strings.TrimSpace(doc)
	d := ir.Documentation{Body: doc, Deprecated: deprecated}
	if i := strings.Index(doc, ". "); i >= 0 {
		d.Summary = doc[:i+1]
	} else {
		d.Summary, _, _ = strings.Cut(doc, "\n")
	}
	return d
}

// OutputName derives a generated file name from a definition file path:
// "defs/animals.yaml" becomes "animals_enum.go".
func OutputName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return ""
	}
	return base + "_enum.go"
}
