package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// A scalar (empty shape) has one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// NormalizeDim maps a possibly negative dimension index into [0, len(s)).
func (s Shape) NormalizeDim(dim int) (int, error) {
	if dim < 0 {
		dim += len(s)
	}
	if dim < 0 || dim >= len(s) {
		return 0, fmt.Errorf("dimension %d out of range for shape %v", dim, s)
	}
	return dim, nil
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are aligned from the right; two dimensions are compatible when they
// are equal or one of them is 1. Missing leading dimensions count as 1.
//
// Returns the broadcast shape, whether any dimension had to be stretched, and
// an error if the shapes are incompatible.
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(5)    + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	n := max(len(a), len(b))
	out := make(Shape, n)
	stretched := len(a) != len(b)

	for i := 1; i <= n; i++ {
		aDim, bDim := 1, 1
		if len(a)-i >= 0 {
			aDim = a[len(a)-i]
		}
		if len(b)-i >= 0 {
			bDim = b[len(b)-i]
		}

		switch {
		case aDim == bDim:
			out[n-i] = aDim
		case aDim == 1:
			out[n-i] = bDim
			stretched = true
		case bDim == 1:
			out[n-i] = aDim
			stretched = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, n-i, aDim, bDim)
		}
	}

	return out, stretched, nil
}
