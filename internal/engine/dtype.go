package engine

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for elements.
type DataType int

// Supported element data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseDataType converts a type name to its DataType.
func ParseDataType(name string) (DataType, bool) {
	switch name {
	case "float32":
		return Float32, true
	case "float64":
		return Float64, true
	case "int32":
		return Int32, true
	case "int64":
		return Int64, true
	case "uint8":
		return Uint8, true
	case "bool":
		return Bool, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether arithmetic is defined for the data type.
func (dt DataType) IsNumeric() bool {
	return dt != Bool
}

// promotionRank orders numeric types for promotion: a mixed-type pair
// promotes to the higher-ranked type, and any float outranks any integer.
func (dt DataType) promotionRank() int {
	switch dt {
	case Uint8:
		return 0
	case Int32:
		return 1
	case Int64:
		return 2
	case Float32:
		return 3
	case Float64:
		return 4
	default:
		return -1
	}
}

// Promote computes the common numeric type of two element types.
// Integer and floating-point mix to floating-point; mixed widths
// promote to the wider type. Returns false when either side is
// non-numeric (bool), for which arithmetic has no defined result.
func Promote(a, b DataType) (DataType, bool) {
	ra, rb := a.promotionRank(), b.promotionRank()
	if ra < 0 || rb < 0 {
		return 0, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
