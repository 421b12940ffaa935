package smartenum

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values[T Integer](d *Declaration[T]) []T {
	var out []T
	for _, s := range d.Symbols() {
		out = append(out, s.Value)
	}
	return out
}

func TestDeclare_ImplicitValuesArePositions(t *testing.T) {
	d, err := Declare("Plain", Sym[int]("Item0"), Sym[int]("Item1"), Sym[int]("Item2"))
	require.NoError(t, err)

	assert.Equal(t, 3, d.ElementCount())
	assert.Equal(t, []int{0, 1, 2}, values(d))
	assert.Equal(t, "Plain", d.Name())
}

func TestDeclare_ExplicitValues(t *testing.T) {
	d, err := Declare("WithValues",
		Sym[int]("A"),
		SymAt("B", 5),
		Sym[int]("C"),
		SymAt("D", 99),
	)
	require.NoError(t, err)

	assert.Equal(t, 4, d.ElementCount())
	assert.Equal(t, []int{0, 5, 6, 99}, values(d))

	v, ok := d.Value("C")
	assert.True(t, ok)
	assert.Equal(t, 6, v)

	_, ok = d.Value("E")
	assert.False(t, ok)
}

func TestDeclare_ExplicitStart(t *testing.T) {
	d := MustDeclare("RangeBased", SymAt[uint8]("Item0", 10), Sym[uint8]("Item1"), Sym[uint8]("Item2"))
	assert.Equal(t, []uint8{10, 11, 12}, values(d))
}

func TestDeclare_CollidingValues(t *testing.T) {
	// B resets the counter, so C takes 1 again and collides with A and D.
	d := MustDeclare("Collide", SymAt("A", 1), SymAt("B", 0), Sym[int]("C"), SymAt("D", 1))
	assert.Equal(t, []int{1, 0, 1, 1}, values(d))

	syms := d.Symbols()
	assert.True(t, syms[0].Explicit)
	assert.False(t, syms[2].Explicit)
}

func TestDeclare_NegativeValues(t *testing.T) {
	d := MustDeclare("Neg", SymAt[int8]("Low", -2), Sym[int8]("Mid"), Sym[int8]("Zero"))
	assert.Equal(t, []int8{-2, -1, 0}, values(d))
}

func TestDeclare_UnderlyingType(t *testing.T) {
	tests := []struct {
		name   string
		kind   reflect.Kind
		bits   int
		signed bool
		got    func() (reflect.Kind, int, bool)
	}{
		{"uint8", reflect.Uint8, 8, false, func() (reflect.Kind, int, bool) {
			d := MustDeclare("U8", Sym[uint8]("Item0"))
			return d.Kind(), d.Bits(), d.Signed()
		}},
		{"int64", reflect.Int64, 64, true, func() (reflect.Kind, int, bool) {
			d := MustDeclare("I64", Sym[int64]("Cat"))
			return d.Kind(), d.Bits(), d.Signed()
		}},
		{"uint32", reflect.Uint32, 32, false, func() (reflect.Kind, int, bool) {
			d := MustDeclare("U32", Sym[uint32]("Item0"))
			return d.Kind(), d.Bits(), d.Signed()
		}},
		{"named int16", reflect.Int16, 16, true, func() (reflect.Kind, int, bool) {
			type level int16
			d := MustDeclare("Level", Sym[level]("Debug"))
			return d.Kind(), d.Bits(), d.Signed()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, bits, signed := tt.got()
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.bits, bits)
			assert.Equal(t, tt.signed, signed)
		})
	}
}

func TestDeclare_Errors(t *testing.T) {
	tests := []struct {
		name    string
		declare func() error
		want    error
	}{
		{"empty", func() error {
			_, err := Declare[int]("Empty")
			return err
		}, ErrInvalid},
		{"blank name", func() error {
			_, err := Declare("Blank", Sym[int]("A"), Sym[int](""))
			return err
		}, ErrInvalid},
		{"duplicate name", func() error {
			_, err := Declare("Dup", Sym[int]("A"), SymAt("A", 4))
			return err
		}, ErrDuplicate},
		{"implicit after max", func() error {
			_, err := Declare("Wrap", SymAt[uint8]("Max", math.MaxUint8), Sym[uint8]("Next"))
			return err
		}, ErrOverflow},
		{"implicit after signed max", func() error {
			_, err := Declare("Wrap", SymAt[int8]("Max", math.MaxInt8), Sym[int8]("Next"))
			return err
		}, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.declare()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want code of %v", err, tt.want)
		})
	}
}

func TestDeclare_MaxValueWithoutSuccessor(t *testing.T) {
	d, err := Declare("Edge", Sym[uint8]("Zero"), SymAt[uint8]("Max", math.MaxUint8))
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, math.MaxUint8}, values(d))

	// An explicit value after the maximum is fine; only implicit ones wrap.
	_, err = Declare("Edge", SymAt[uint8]("Max", math.MaxUint8), SymAt[uint8]("Zero", 0), Sym[uint8]("One"))
	require.NoError(t, err)
}

func TestMustDeclare_Panics(t *testing.T) {
	assert.PanicsWithError(t, "invalid: enum Empty declares no symbols", func() {
		MustDeclare[int]("Empty")
	})
}

func TestDeclaration_Symbol(t *testing.T) {
	d := MustDeclare("S", Sym[int]("A"), SymAt("B", 7))

	s, err := d.Symbol(1)
	require.NoError(t, err)
	assert.Equal(t, Symbol[int]{Name: "B", Value: 7, Explicit: true}, s)

	_, err = d.Symbol(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = d.Symbol(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeclaration_SymbolsIsACopy(t *testing.T) {
	d := MustDeclare("S", Sym[int]("A"))
	syms := d.Symbols()
	syms[0].Name = "changed"
	assert.Equal(t, "A", d.Symbols()[0].Name)
}
