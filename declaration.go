package smartenum

import (
	"reflect"
	"slices"

	"golang.org/x/exp/constraints"
)

// Integer is the set of types an enumeration can be declared over.
type Integer = constraints.Integer

// Symbol is one declared enumeration constant.
//
// When Explicit is false, Value is ignored on input and assigned during
// declaration: one more than the previous symbol's value, or 0 for the first
// symbol.
type Symbol[T Integer] struct {
	Name     string
	Value    T
	Explicit bool
}

// Sym declares a symbol that takes the next implicit value.
func Sym[T Integer](name string) Symbol[T] {
	return Symbol[T]{Name: name}
}

// SymAt declares a symbol with an explicit value.
func SymAt[T Integer](name string, value T) Symbol[T] {
	return Symbol[T]{Name: name, Value: value, Explicit: true}
}

// Declaration is the full, ordered list of constants of one enumeration
// together with their resolved values. It is immutable once created.
type Declaration[T Integer] struct {
	name    string
	symbols []Symbol[T]
	byName  map[string]int
}

// Declare resolves the values of symbols in order and returns the resulting
// declaration.
//
// It fails when symbols is empty, when a name is empty or repeated, or when
// an implicit value would not fit in T. Explicit values may repeat and need
// not increase.
func Declare[T Integer](name string, symbols ...Symbol[T]) (*Declaration[T], error) {
	if len(symbols) == 0 {
		return nil, Errorf(CodeInvalid, "enum %s declares no symbols", name).
			WithDetail("enum", name)
	}

	d := &Declaration[T]{
		name:    name,
		symbols: make([]Symbol[T], len(symbols)),
		byName:  make(map[string]int, len(symbols)),
	}

	var (
		next     T
		overflow bool // next wrapped past the maximum of T
	)
	for i, s := range symbols {
		if s.Name == "" {
			return nil, Errorf(CodeInvalid, "enum %s: symbol %d has no name", name, i).
				WithDetails(map[string]any{"enum": name, "position": i})
		}
		if prev, ok := d.byName[s.Name]; ok {
			return nil, Errorf(CodeDuplicate, "enum %s: symbol %s declared twice", name, s.Name).
				WithDetails(map[string]any{"enum": name, "symbol": s.Name, "first": prev, "position": i})
		}
		d.byName[s.Name] = i

		if !s.Explicit {
			if overflow {
				return nil, Errorf(CodeOverflow, "enum %s: implicit value of %s overflows %s", name, s.Name, kindOf[T]()).
					WithDetails(map[string]any{"enum": name, "symbol": s.Name})
			}
			s.Value = next
		}
		d.symbols[i] = s

		next = s.Value + 1
		overflow = next < s.Value
	}
	return d, nil
}

// MustDeclare is like Declare but panics on error. It is intended for
// package-level variables, where a bad declaration must stop the program.
func MustDeclare[T Integer](name string, symbols ...Symbol[T]) *Declaration[T] {
	d, err := Declare(name, symbols...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the enumeration's name.
func (d *Declaration[T]) Name() string { return d.name }

// ElementCount returns the number of declared symbols.
func (d *Declaration[T]) ElementCount() int { return len(d.symbols) }

// Symbols returns the declared symbols, in declaration order, with resolved
// values.
func (d *Declaration[T]) Symbols() []Symbol[T] { return slices.Clone(d.symbols) }

// Symbol returns the i-th declared symbol.
func (d *Declaration[T]) Symbol(i int) (Symbol[T], error) {
	if i < 0 || i >= len(d.symbols) {
		return Symbol[T]{}, outOfRange(d.name, i, len(d.symbols))
	}
	return d.symbols[i], nil
}

// Value returns the resolved value of the named symbol.
func (d *Declaration[T]) Value(name string) (T, bool) {
	i, ok := d.byName[name]
	if !ok {
		return 0, false
	}
	return d.symbols[i].Value, true
}

// Kind returns the reflect kind of the underlying integer type.
func (d *Declaration[T]) Kind() reflect.Kind { return kindOf[T]() }

// Bits returns the size of the underlying integer type in bits.
func (d *Declaration[T]) Bits() int { return reflect.TypeFor[T]().Bits() }

// Signed reports whether the underlying integer type is signed.
func (d *Declaration[T]) Signed() bool {
	switch d.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func kindOf[T Integer]() reflect.Kind {
	return reflect.TypeFor[T]().Kind()
}

func outOfRange(enum string, i, n int) *Error {
	return Errorf(CodeOutOfRange, "enum %s: index %d out of range [0, %d)", enum, i, n).
		WithDetails(map[string]any{"enum": enum, "index": i, "count": n})
}
