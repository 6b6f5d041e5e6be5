package tensor

// Backend defines the interface that all compute backends must implement.
// Backends perform the actual computation behind Tensor operations and
// always return newly allocated results.
//
// Implementations:
//   - CPU: pure Go kernels with row-parallel matmul (internal/backend/cpu)
//
// Activation functions are exposed through optional interfaces in the nn
// package so a backend only has to implement what its layers need.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2D tensors: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor // concatenate along dimension
	Chunk(x *RawTensor, n, dim int) []*RawTensor  // split into n equal parts

	// Embedding looks up rows of weight [num, dim] for int32 indices of any shape.
	Embedding(weight, indices *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
