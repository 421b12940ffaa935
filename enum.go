package smartenum

import (
	"iter"
	"slices"
	"sync"

	"github.com/broady/smartenum/namelist"
)

// Names is the source of an enumeration's display names. The zero value
// supplies no names, so every item displays as the empty string.
type Names struct {
	literal string
	list    []string
	isList  bool
}

// Literal supplies display names as one comma-separated stream, parsed with
// namelist.Parse the first time a name is needed.
func Literal(s string) Names {
	return Names{literal: s}
}

// List supplies display names already split, one per item position.
func List(names ...string) Names {
	return Names{list: slices.Clone(names), isList: true}
}

func (n Names) table(count int) []string {
	switch {
	case n.isList:
		return namelist.Fit(n.list, count)
	case n.literal != "":
		return namelist.ParseN(n.literal, count)
	default:
		return make([]string, count)
	}
}

// Enum is the metadata and lookup table of one enumeration: the declaration,
// the ordered active items, and the display names aligned to those items by
// position.
//
// Items may omit, reorder, or repeat declared symbols. All lookups resolve
// ties by the earliest position. An Enum is safe for concurrent use.
type Enum[T Integer] struct {
	decl  *Declaration[T]
	items []T
	src   Names

	once    sync.Once
	names   []string
	byValue map[T]int
	byName  map[string]int
}

// Bind creates the metadata table for decl. Each entry of items names a
// declared symbol; names supplies the display string of each item position.
func Bind[T Integer](decl *Declaration[T], items []string, names Names) (*Enum[T], error) {
	if decl == nil {
		return nil, NewError(CodeInvalid, "nil declaration")
	}
	e := &Enum[T]{
		decl:  decl,
		items: make([]T, len(items)),
		src:   names,
	}
	for i, name := range items {
		v, ok := decl.Value(name)
		if !ok {
			return nil, Errorf(CodeUndeclared, "enum %s: item %d refers to undeclared symbol %q", decl.name, i, name).
				WithDetails(map[string]any{"enum": decl.name, "symbol": name, "position": i})
		}
		e.items[i] = v
	}
	return e, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T Integer](decl *Declaration[T], items []string, names Names) *Enum[T] {
	e, err := Bind(decl, items, names)
	if err != nil {
		panic(err)
	}
	return e
}

// New declares symbols with implicit values and binds all of them, in
// declaration order, with their own names as display names.
func New[T Integer](name string, symbols ...string) (*Enum[T], error) {
	syms := make([]Symbol[T], len(symbols))
	for i, s := range symbols {
		syms[i] = Sym[T](s)
	}
	decl, err := Declare(name, syms...)
	if err != nil {
		return nil, err
	}
	return Bind(decl, symbols, List(symbols...))
}

// MustNew is like New but panics on error.
func MustNew[T Integer](name string, symbols ...string) *Enum[T] {
	e, err := New[T](name, symbols...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Enum[T]) init() {
	e.once.Do(func() {
		e.names = e.src.table(len(e.items))
		e.byValue = make(map[T]int, len(e.items))
		e.byName = make(map[string]int, len(e.names))
		for i, v := range e.items {
			if _, ok := e.byValue[v]; !ok {
				e.byValue[v] = i
			}
		}
		for i, s := range e.names {
			if _, ok := e.byName[s]; !ok {
				e.byName[s] = i
			}
		}
	})
}

// Declaration returns the full declaration the items were drawn from.
func (e *Enum[T]) Declaration() *Declaration[T] { return e.decl }

// Name returns the enumeration's name.
func (e *Enum[T]) Name() string { return e.decl.name }

// ElementCount returns the number of declared symbols, which does not depend
// on the active items.
func (e *Enum[T]) ElementCount() int { return e.decl.ElementCount() }

// ItemCount returns the number of active items.
func (e *Enum[T]) ItemCount() int { return len(e.items) }

// Item returns the item at position i.
func (e *Enum[T]) Item(i int) (T, error) {
	if i < 0 || i >= len(e.items) {
		return 0, outOfRange(e.decl.name, i, len(e.items))
	}
	return e.items[i], nil
}

// Items returns a copy of the active items in iteration order.
func (e *Enum[T]) Items() []T { return slices.Clone(e.items) }

// All yields the active items in iteration order.
func (e *Enum[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range e.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward yields the active items in reverse iteration order.
func (e *Enum[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(e.items) - 1; i >= 0; i-- {
			if !yield(e.items[i]) {
				return
			}
		}
	}
}

// Index returns the first position holding v.
func (e *Enum[T]) Index(v T) (int, bool) {
	e.init()
	i, ok := e.byValue[v]
	return i, ok
}

// Contains reports whether v is an active item.
func (e *Enum[T]) Contains(v T) bool {
	_, ok := e.Index(v)
	return ok
}

// ItemName returns the display name at position i.
func (e *Enum[T]) ItemName(i int) (string, error) {
	if i < 0 || i >= len(e.items) {
		return "", outOfRange(e.decl.name, i, len(e.items))
	}
	e.init()
	return e.names[i], nil
}

// Names returns a copy of the display-name table, aligned to Items.
func (e *Enum[T]) Names() []string {
	e.init()
	return slices.Clone(e.names)
}

// String returns the display name of the first item equal to v. It returns
// the empty string when v is not an active item or its name is blank.
func (e *Enum[T]) String(v T) string {
	i, ok := e.Index(v)
	if !ok {
		return ""
	}
	return e.names[i]
}

// Parse returns the item whose display name is exactly s. When several
// positions share the name, the first wins. Blank table entries are matched
// by the empty string.
func (e *Enum[T]) Parse(s string) (T, bool) {
	e.init()
	i, ok := e.byName[s]
	if !ok {
		return 0, false
	}
	return e.items[i], true
}

// ParseInto stores the item named s in dst and reports whether it was found.
// dst is left untouched when s does not match.
func (e *Enum[T]) ParseInto(dst *T, s string) bool {
	v, ok := e.Parse(s)
	if ok {
		*dst = v
	}
	return ok
}

// Lookup is like Parse but reports a miss as an error.
func (e *Enum[T]) Lookup(s string) (T, error) {
	v, ok := e.Parse(s)
	if !ok {
		return 0, Errorf(CodeNotFound, "enum %s: no item named %q", e.decl.name, s).
			WithDetails(map[string]any{"enum": e.decl.name, "name": s})
	}
	return v, nil
}
