// Package testutil provides testing helpers for enumeration tables.
// This package is designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"errors"
	"slices"
	"testing"

	"github.com/broady/smartenum"
)

// CheckEnum verifies the invariants every enumeration table must hold:
// counts agree with iteration, Backward mirrors All, Item agrees with
// iteration and rejects the first index past the end, and every display name
// at its first occurrence round-trips through Parse and String.
func CheckEnum[T smartenum.Integer](t testing.TB, e *smartenum.Enum[T]) {
	t.Helper()

	forward := slices.Collect(e.All())
	if len(forward) != e.ItemCount() {
		t.Errorf("%s: All() yielded %d items, ItemCount() = %d", e.Name(), len(forward), e.ItemCount())
	}
	if e.ElementCount() != e.Declaration().ElementCount() {
		t.Errorf("%s: ElementCount() = %d, declaration has %d", e.Name(), e.ElementCount(), e.Declaration().ElementCount())
	}

	backward := slices.Collect(e.Backward())
	slices.Reverse(backward)
	if !slices.Equal(forward, backward) {
		t.Errorf("%s: Backward() is not the reverse of All()\nAll:      %v\nBackward: %v", e.Name(), forward, backward)
	}

	for i, want := range forward {
		got, err := e.Item(i)
		if err != nil {
			t.Errorf("%s: Item(%d) error: %v", e.Name(), i, err)
			continue
		}
		if got != want {
			t.Errorf("%s: Item(%d) = %v, All() yielded %v", e.Name(), i, got, want)
		}
	}
	AssertErrorCode(t, itemErr(e, e.ItemCount()), smartenum.CodeOutOfRange)

	names := e.Names()
	if len(names) != e.ItemCount() {
		t.Errorf("%s: Names() has %d entries, ItemCount() = %d", e.Name(), len(names), e.ItemCount())
	}
	for i, name := range names {
		if slices.Index(names, name) != i {
			continue // only the first occurrence is reachable
		}
		v, ok := e.Parse(name)
		if !ok {
			t.Errorf("%s: Parse(%q) failed for name at position %d", e.Name(), name, i)
			continue
		}
		if v != forward[i] {
			t.Errorf("%s: Parse(%q) = %v, want %v", e.Name(), name, v, forward[i])
		}
		if first := slices.Index(forward, v); first == i && e.String(v) != name {
			t.Errorf("%s: String(%v) = %q, want %q", e.Name(), v, e.String(v), name)
		}
	}
}

func itemErr[T smartenum.Integer](e *smartenum.Enum[T], i int) error {
	_, err := e.Item(i)
	return err
}

// AssertItems checks that e iterates exactly want, in order.
func AssertItems[T smartenum.Integer](t testing.TB, e *smartenum.Enum[T], want ...T) {
	t.Helper()
	if got := slices.Collect(e.All()); !slices.Equal(got, want) {
		t.Errorf("%s: items = %v, want %v", e.Name(), got, want)
	}
}

// AssertStrings checks String for each value. want maps values to their
// expected display names.
func AssertStrings[T smartenum.Integer](t testing.TB, e *smartenum.Enum[T], want map[T]string) {
	t.Helper()
	for v, name := range want {
		if got := e.String(v); got != name {
			t.Errorf("%s: String(%v) = %q, want %q", e.Name(), v, got, name)
		}
	}
}

// AssertErrorCode checks that err is a *smartenum.Error with the expected code.
func AssertErrorCode(t testing.TB, err error, expectedCode smartenum.ErrorCode) *smartenum.Error {
	t.Helper()

	var enumErr *smartenum.Error
	if !errors.As(err, &enumErr) {
		t.Errorf("expected *smartenum.Error with code %s, got %v", expectedCode, err)
		return nil
	}
	if enumErr.Code != expectedCode {
		t.Errorf("expected error code %s, got %s (message: %s)", expectedCode, enumErr.Code, enumErr.Message)
	}
	return enumErr
}
