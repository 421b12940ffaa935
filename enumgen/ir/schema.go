package ir

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/smartenum"
)

// Schema represents a complete set of enumerations to generate into one
// package.
type Schema struct {
	// Package is the target Go package.
	Package PackageInfo

	// Enums contains the enumerations in definition order.
	Enums []*EnumDescriptor

	// Warnings contains non-fatal issues found by Analyze.
	Warnings []Warning
}

// AddEnum adds an enum descriptor to the schema.
func (s *Schema) AddEnum(e *EnumDescriptor) {
	s.Enums = append(s.Enums, e)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindEnum looks up an enum by type name. Returns nil if not found.
func (s *Schema) FindEnum(name string) *EnumDescriptor {
	for _, e := range s.Enums {
		if e.Name.Name == name {
			return e
		}
	}
	return nil
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errs []*ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if s.Package.Name != "" && !IsIdentifier(s.Package.Name) {
		add("invalid_identifier", "package name %q is not a Go identifier", s.Package.Name)
	}
	if len(s.Enums) == 0 {
		add("empty_schema", "no enums defined")
	}

	// Every identifier the generated file declares at package scope.
	declared := make(map[string]string)
	declare := func(ident, owner string) {
		if prev, ok := declared[ident]; ok {
			add("duplicate_identifier", "identifier %s is declared by both %s and %s", ident, prev, owner)
			return
		}
		declared[ident] = owner
	}

	for _, e := range s.Enums {
		name := e.Name.Name
		if !IsIdentifier(name) {
			add("invalid_identifier", "enum name %q is not a Go identifier", name)
			continue
		}
		if e.Underlying == nil {
			add("missing_type", "enum %s has no underlying type", name)
		}
		for _, helper := range HelperNames(name) {
			declare(helper, "enum "+name)
		}

		if len(e.Members) == 0 {
			add("empty_enum", "enum %s declares no symbols", name)
		}
		members := make(map[string]bool, len(e.Members))
		for i := range e.Members {
			m := &e.Members[i]
			if m.Name == "" {
				add("invalid_identifier", "enum %s: symbol %d has no name", name, i)
				continue
			}
			if members[m.Name] {
				add("duplicate_symbol", "enum %s: symbol %s declared twice", name, m.Name)
				continue
			}
			members[m.Name] = true

			c := e.ConstName(m)
			if !IsIdentifier(c) {
				add("invalid_identifier", "enum %s: constant name %q is not a Go identifier", name, c)
				continue
			}
			declare(c, "enum "+name+" symbol "+m.Name)
		}

		for i, item := range e.Items {
			if !members[item] {
				add("undeclared_item", "enum %s: item %d refers to undeclared symbol %q", name, i, item)
			}
		}
		if e.Names.Literal != nil && e.Names.List != nil {
			add("conflicting_names", "enum %s: strings and names are mutually exclusive", name)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	result := make([]error, len(errs))
	for i, err := range errs {
		result[i] = err
	}
	return result
}

// Resolve assigns a value to every member using the same sequential rule as
// smartenum.Declare: an implicit member takes the previous value plus one,
// the first implicit member of an enum takes zero. Explicit literals accept
// any Go integer literal syntax. Values that do not fit the underlying type
// are errors.
func (s *Schema) Resolve() error {
	var errs []error
	for _, e := range s.Enums {
		if e.Underlying == nil || len(e.Members) == 0 {
			continue
		}
		var err error
		if e.Underlying.Signed() {
			err = resolveSigned(e)
		} else {
			err = resolveUnsigned(e)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("enum %s: %w", e.Name.Name, err))
		}
	}
	return errors.Join(errs...)
}

func resolveSigned(e *EnumDescriptor) error {
	bits := e.Underlying.Bits()
	syms := make([]smartenum.Symbol[int64], len(e.Members))
	for i, m := range e.Members {
		syms[i] = smartenum.Sym[int64](m.Name)
		if m.Explicit() {
			v, err := strconv.ParseInt(m.Literal, 0, bits)
			if err != nil {
				return fmt.Errorf("symbol %s: value %s does not fit %s: %w", m.Name, m.Literal, e.Underlying.GoType(), err)
			}
			syms[i] = smartenum.SymAt(m.Name, v)
		}
	}
	decl, err := smartenum.Declare(e.Name.Name, syms...)
	if err != nil {
		return err
	}
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
	for i, sym := range decl.Symbols() {
		if sym.Value < lo || sym.Value > hi {
			return smartenum.Errorf(smartenum.CodeOverflow, "implicit value of %s overflows %s", sym.Name, e.Underlying.GoType())
		}
		e.Members[i].Value = sym.Value
	}
	return nil
}

func resolveUnsigned(e *EnumDescriptor) error {
	bits := e.Underlying.Bits()
	syms := make([]smartenum.Symbol[uint64], len(e.Members))
	for i, m := range e.Members {
		syms[i] = smartenum.Sym[uint64](m.Name)
		if m.Explicit() {
			v, err := strconv.ParseUint(m.Literal, 0, bits)
			if err != nil {
				return fmt.Errorf("symbol %s: value %s does not fit %s: %w", m.Name, m.Literal, e.Underlying.GoType(), err)
			}
			syms[i] = smartenum.SymAt(m.Name, v)
		}
	}
	decl, err := smartenum.Declare(e.Name.Name, syms...)
	if err != nil {
		return err
	}
	hi := uint64(1)<<bits - 1
	if bits == 64 {
		hi = ^uint64(0)
	}
	for i, sym := range decl.Symbols() {
		if sym.Value > hi {
			return smartenum.Errorf(smartenum.CodeOverflow, "implicit value of %s overflows %s", sym.Name, e.Underlying.GoType())
		}
		e.Members[i].Value = sym.Value
	}
	return nil
}

// Analyze records warnings for definitions that are legal but probably not
// what the author meant. It replaces any warnings from a previous call.
func (s *Schema) Analyze() []Warning {
	s.Warnings = nil
	for _, e := range s.Enums {
		name := e.Name.Name
		src := e.Source
		warn := func(code, format string, args ...any) {
			w := Warning{Code: code, Message: fmt.Sprintf(format, args...), TypeName: name}
			if !src.IsZero() {
				w.Source = &src
			}
			s.AddWarning(w)
		}

		names := e.DisplayNames()
		hasNames := !e.Names.IsZero()
		seenItem := make(map[string]int, len(e.Items))
		seenName := make(map[string]int, len(names))
		for i, item := range e.Items {
			if first, ok := seenItem[item]; ok {
				warn(WarnDuplicateItem, "enum %s: item %s at position %d repeats position %d", name, item, i, first)
			} else {
				seenItem[item] = i
			}

			if !hasNames {
				continue
			}
			display := names[i]
			if display == "" {
				warn(WarnUnnamedItem, "enum %s: item %s at position %d has no display name", name, item, i)
				continue
			}
			if first, ok := seenName[display]; ok {
				warn(WarnShadowedName, "enum %s: display name %q at position %d repeats position %d", name, display, i, first)
			} else {
				seenName[display] = i
			}
		}
		if hasNames && e.Names.Len() > len(e.Items) && len(e.Items) > 0 {
			warn(WarnUnusedNames, "enum %s: %d display names for %d items", name, e.Names.Len(), len(e.Items))
		}
	}
	return s.Warnings
}

// HelperNames returns the package-level identifiers generated for an enum
// besides its constants: the type, the metadata variable, and the accessor
// functions.
func HelperNames(typeName string) []string {
	return []string{
		typeName,
		TableVar(typeName),
		Exportable(typeName, "Parse", ""),
		Exportable(typeName, "", "Items"),
		Exportable(typeName, "", "Enum"),
	}
}

// Identifiers returns every package-level identifier the schema generates,
// in declaration order.
func (s *Schema) Identifiers() []string {
	var names []string
	for _, e := range s.Enums {
		names = append(names, HelperNames(e.Name.Name)...)
		for i := range e.Members {
			names = append(names, e.ConstName(&e.Members[i]))
		}
	}
	return names
}

// TableVar returns the name of the unexported metadata variable.
func TableVar(typeName string) string {
	return "_" + lowerFirst(typeName) + "Table"
}

// Exportable forms a helper name that is exported exactly when typeName is.
// Exportable("Color", "Parse", "") is "ParseColor"; for "color" it is
// "parseColor". A suffix alone is appended unchanged.
func Exportable(typeName, prefix, suffix string) string {
	if prefix == "" {
		return typeName + suffix
	}
	if token.IsExported(typeName) {
		return prefix + typeName + suffix
	}
	return lowerFirst(prefix) + upperFirst(typeName) + suffix
}

// IsIdentifier reports whether s is a Go identifier that is not a keyword.
func IsIdentifier(s string) bool {
	return token.IsIdentifier(s) && s != "_"
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[n:]
}
