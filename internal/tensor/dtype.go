// Package tensor provides the core tensor types and operations used by the recurrent model stack.
package tensor

// DType constrains the element types a Tensor can hold.
//
// The model uses two of them: int32 for token id batches fed to an
// embedding, and float32 for parameters, activations and hidden states.
// float64 and int64 exist for reference computations and wide index data.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// DataType tags a RawTensor's buffer with its element type.
type DataType int

// Element types. Float32 is the zero value so an untyped buffer reads as activations.
const (
	Float32 DataType = iota
	Float64
	Int32 // token ids
	Int64
)

// Size returns the width of one element in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// IsFloat reports whether dt can hold activations. Kernels such as sigmoid,
// tanh and embedding weights reject the integer types.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

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
	default:
		return "unknown"
	}
}

// dataTypeOf maps the Go element type T to its runtime tag.
func dataTypeOf[T DType]() DataType {
	switch any(*new(T)).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	}
	panic("tensor: unsupported element type")
}
