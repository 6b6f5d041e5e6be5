// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/seqrnn/internal/nn"
	"github.com/born-ml/seqrnn/tensor"
)

// Module is the base interface for single-input neural network components.
type Module[B tensor.Backend] = nn.Module[B]

// StateDicter is implemented by layers that export and import their
// parameters as named raw tensors.
type StateDicter = nn.StateDicter

// Parameter is a named trainable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// State dict errors returned by LoadStateDict.
var (
	ErrMissingParameter = nn.ErrMissingParameter
	ErrParameterShape   = nn.ErrParameterShape
	ErrParameterDType   = nn.ErrParameterDType
)

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer computing y = x @ W.T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a Linear layer.
//
//	layer := nn.NewLinear(64, 1000, backend) // [batch, 64] -> [batch, 1000]
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Embedding maps int32 token ids to dense vectors.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates an Embedding with weights drawn from N(0, 1).
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, backend)
}

// NewEmbeddingWithWeight creates an Embedding over an existing [num, dim] weight.
func NewEmbeddingWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Embedding[B] {
	return nn.NewEmbeddingWithWeight(weight)
}

// GRU is a multi-layer gated recurrent unit.
type GRU[B tensor.Backend] = nn.GRU[B]

// NewGRU creates a GRU.
//
//	gru := nn.NewGRU(64, 128, 2, backend)
//	out, hn := gru.Forward(x, h0) // x [seq, batch, 64], h0 [2, batch, 128]
func NewGRU[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *GRU[B] {
	return nn.NewGRU(inputSize, hiddenSize, numLayers, backend)
}

// LSTM is a multi-layer long short-term memory unit.
type LSTM[B tensor.Backend] = nn.LSTM[B]

// LSTMState is the (hidden, cell) pair carried by an LSTM.
type LSTMState[B tensor.Backend] = nn.LSTMState[B]

// NewLSTM creates an LSTM.
func NewLSTM[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *LSTM[B] {
	return nn.NewLSTM(inputSize, hiddenSize, numLayers, backend)
}

// SigmoidFunc applies the logistic function element-wise.
func SigmoidFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.SigmoidFunc(x)
}

// TanhFunc applies the hyperbolic tangent element-wise.
func TanhFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.TanhFunc(x)
}

// Seed resets the generator used by every initializer.
func Seed(seed int64) {
	nn.Seed(seed)
}

// Xavier creates a tensor with Xavier/Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Uniform creates a tensor with values drawn from U(-bound, bound).
func Uniform[B tensor.Backend](bound float64, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Uniform(bound, shape, backend)
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}

// Zeros creates a zero-filled float32 tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}
