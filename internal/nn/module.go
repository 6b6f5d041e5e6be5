// Package nn implements the neural network layers used by the recurrent model.
//
// This package provides building blocks for constructing sequence models:
//   - Module interface: Base interface for single-input layers
//   - Parameter: Named trainable tensors
//   - Linear: Fully connected layer
//   - Embedding: Token id lookup table
//   - GRU, LSTM: Multi-layer recurrent units
//   - Sigmoid/Tanh activation functions
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/born-ml/seqrnn/internal/tensor"
)

// Module is the base interface for single-input neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter[B]
}

// StateDicter is implemented by layers whose parameters can be exported
// and imported as named raw tensors.
type StateDicter interface {
	// StateDict returns a map of parameter names to raw tensors.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies matching entries into the layer's parameters.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}
