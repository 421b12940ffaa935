package ir

import "fmt"

// PrimitiveKind identifies the category of an underlying integer type.
type PrimitiveKind int

const (
	PrimitiveInt     PrimitiveKind = iota // Signed integer (see BitSize)
	PrimitiveUint                         // Unsigned integer (see BitSize)
	PrimitiveUintptr                      // uintptr
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveInt:
		return "Int"
	case PrimitiveUint:
		return "Uint"
	case PrimitiveUintptr:
		return "Uintptr"
	default:
		return "Unknown"
	}
}

// PrimitiveDescriptor is the underlying integer type of an enumeration.
type PrimitiveDescriptor struct {
	PrimitiveKind PrimitiveKind

	// BitSize is the explicit width: 8, 16, 32, or 64. Zero means the
	// platform-dependent int or uint, which is treated as 64 bits wide when
	// range-checking values.
	BitSize int
}

// Int returns a PrimitiveDescriptor for int with the given bit size.
// Use 0 for platform-dependent int.
func Int(bitSize int) *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveInt, BitSize: bitSize}
}

// Uint returns a PrimitiveDescriptor for uint with the given bit size.
// Use 0 for platform-dependent uint.
func Uint(bitSize int) *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveUint, BitSize: bitSize}
}

// Signed reports whether the type is a signed integer.
func (d *PrimitiveDescriptor) Signed() bool {
	return d.PrimitiveKind == PrimitiveInt
}

// Bits returns the width used for range checks.
func (d *PrimitiveDescriptor) Bits() int {
	if d.BitSize == 0 {
		return 64
	}
	return d.BitSize
}

// GoType returns the Go spelling of the type.
func (d *PrimitiveDescriptor) GoType() string {
	switch d.PrimitiveKind {
	case PrimitiveUintptr:
		return "uintptr"
	case PrimitiveUint:
		if d.BitSize == 0 {
			return "uint"
		}
		return fmt.Sprintf("uint%d", d.BitSize)
	default:
		if d.BitSize == 0 {
			return "int"
		}
		return fmt.Sprintf("int%d", d.BitSize)
	}
}

// ParseIntType returns the descriptor for a Go integer type name. The empty
// string means int.
func ParseIntType(name string) (*PrimitiveDescriptor, error) {
	switch name {
	case "", "int":
		return Int(0), nil
	case "int8":
		return Int(8), nil
	case "int16":
		return Int(16), nil
	case "int32", "rune":
		return Int(32), nil
	case "int64":
		return Int(64), nil
	case "uint":
		return Uint(0), nil
	case "uint8", "byte":
		return Uint(8), nil
	case "uint16":
		return Uint(16), nil
	case "uint32":
		return Uint(32), nil
	case "uint64":
		return Uint(64), nil
	case "uintptr":
		return &PrimitiveDescriptor{PrimitiveKind: PrimitiveUintptr, BitSize: 64}, nil
	default:
		return nil, fmt.Errorf("unsupported underlying type %q: must be a Go integer type", name)
	}
}
