package cpu

import "github.com/born-ml/seqrnn/internal/tensor"

type number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
)

func opFunc[T number](op binaryOp) func(x, y T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	default:
		panic("unknown binary op")
	}
}

// elementwise computes dst = op(a, b) where a and b broadcast to outShape.
func elementwise[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape, op func(x, y T) T) {
	if aShape.Equal(bShape) {
		for i := range dst {
			dst[i] = op(a[i], b[i])
		}
		return
	}

	as := broadcastStrides(aShape, outShape)
	bs := broadcastStrides(bShape, outShape)
	idx := make([]int, len(outShape))
	ai, bi := 0, 0

	for n := range dst {
		dst[n] = op(a[ai], b[bi])

		// Advance the multi-index like an odometer, rightmost dimension first.
		for d := len(outShape) - 1; d >= 0; d-- {
			idx[d]++
			ai += as[d]
			bi += bs[d]
			if idx[d] < outShape[d] {
				break
			}
			ai -= as[d] * outShape[d]
			bi -= bs[d] * outShape[d]
			idx[d] = 0
		}
	}
}

// broadcastStrides returns strides of in aligned to out, with 0 for
// dimensions that are stretched or missing.
func broadcastStrides(in, out tensor.Shape) []int {
	strides := make([]int, len(out))
	inStrides := in.ComputeStrides()
	offset := len(out) - len(in)
	for i, dim := range in {
		if dim != 1 {
			strides[i+offset] = inStrides[i]
		}
	}
	return strides
}
