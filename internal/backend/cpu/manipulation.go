package cpu

import (
	"fmt"

	"github.com/born-ml/seqrnn/internal/tensor"
)

// Reshape returns a copy of t with a new shape holding the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Transpose permutes dimensions. With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	rank := len(shape)

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if err := validatePermutation(axes, rank); err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	inStrides := t.Strides()
	outShape := make(tensor.Shape, rank)
	permStrides := make([]int, rank)
	for i, ax := range axes {
		outShape[i] = shape[ax]
		permStrides[i] = inStrides[ax]
	}

	result := cpu.alloc("transpose", outShape, t.DType())

	elem := t.DType().Size()
	src := t.Data()
	dst := result.Data()
	idx := make([]int, rank)
	in := 0

	for out := 0; out < result.NumElements(); out++ {
		copy(dst[out*elem:(out+1)*elem], src[in*elem:(in+1)*elem])

		for d := rank - 1; d >= 0; d-- {
			idx[d]++
			in += permStrides[d]
			if idx[d] < outShape[d] {
				break
			}
			in -= permStrides[d] * outShape[d]
			idx[d] = 0
		}
	}

	return result
}

func validatePermutation(axes []int, rank int) error {
	if len(axes) != rank {
		return fmt.Errorf("expected %d axes, got %d", rank, len(axes))
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank || seen[ax] {
			return fmt.Errorf("invalid permutation %v", axes)
		}
		seen[ax] = true
	}
	return nil
}

// Cat concatenates tensors along dim.
// All tensors must have the same dtype, rank and sizes outside dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors")
	}

	first := tensors[0]
	d, err := first.Shape().NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	outShape := first.Shape().Clone()
	outShape[d] = 0
	for i, t := range tensors {
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, want %s", i, t.DType(), first.DType()))
		}
		if !sameOutside(t.Shape(), first.Shape(), d) {
			panic(fmt.Sprintf("cat: tensor %d has shape %v, incompatible with %v along dim %d",
				i, t.Shape(), first.Shape(), d))
		}
		outShape[d] += t.Shape()[d]
	}

	result := cpu.alloc("cat", outShape, first.DType())

	outer, inner := splitAround(outShape, d)
	elem := first.DType().Size()
	dst := result.Data()
	pos := 0

	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			block := t.Shape()[d] * inner * elem
			copy(dst[pos:pos+block], t.Data()[o*block:(o+1)*block])
			pos += block
		}
	}

	return result
}

// Chunk splits x into n equal parts along dim.
// Panics if the dimension is not divisible by n.
func (cpu *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	d, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("chunk: %v", err))
	}
	if n <= 0 || shape[d]%n != 0 {
		panic(fmt.Sprintf("chunk: dimension %d of size %d is not divisible into %d parts", d, shape[d], n))
	}

	part := shape[d] / n
	partShape := shape.Clone()
	partShape[d] = part

	outer, inner := splitAround(shape, d)
	elem := x.DType().Size()
	block := part * inner * elem
	src := x.Data()

	parts := make([]*tensor.RawTensor, n)
	for c := range parts {
		parts[c] = cpu.alloc("chunk", partShape, x.DType())
		dst := parts[c].Data()
		for o := 0; o < outer; o++ {
			from := (o*n + c) * block
			copy(dst[o*block:(o+1)*block], src[from:from+block])
		}
	}

	return parts
}

// splitAround returns the element counts before and after dimension d.
func splitAround(shape tensor.Shape, d int) (outer, inner int) {
	outer, inner = 1, 1
	for i, s := range shape {
		switch {
		case i < d:
			outer *= s
		case i > d:
			inner *= s
		}
	}
	return outer, inner
}

func sameOutside(a, b tensor.Shape, d int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if i != d && a[i] != b[i] {
			return false
		}
	}
	return true
}
