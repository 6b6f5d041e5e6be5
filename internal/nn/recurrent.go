package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/seqrnn/internal/tensor"
)

// cellWeights holds the parameters of one recurrent layer.
//
// Gate blocks are stacked along the first dimension of every weight, so a
// GRU layer (3 gates) has weight_ih of shape [3*hidden, input] and an LSTM
// layer (4 gates) [4*hidden, input]. Names follow PyTorch: weight_ih_l{k},
// weight_hh_l{k}, bias_ih_l{k}, bias_hh_l{k}.
type cellWeights[B tensor.Backend] struct {
	weightIH *Parameter[B] // [gates*hidden, input]
	weightHH *Parameter[B] // [gates*hidden, hidden]
	biasIH   *Parameter[B] // [gates*hidden]
	biasHH   *Parameter[B] // [gates*hidden]
	gates    int
}

func newCellWeights[B tensor.Backend](gates, inputSize, hiddenSize, layer int, backend B) *cellWeights[B] {
	bound := 1.0 / math.Sqrt(float64(hiddenSize))
	rows := gates * hiddenSize

	return &cellWeights[B]{
		weightIH: NewParameter(fmt.Sprintf("weight_ih_l%d", layer), Uniform(bound, tensor.Shape{rows, inputSize}, backend)),
		weightHH: NewParameter(fmt.Sprintf("weight_hh_l%d", layer), Uniform(bound, tensor.Shape{rows, hiddenSize}, backend)),
		biasIH:   NewParameter(fmt.Sprintf("bias_ih_l%d", layer), Uniform(bound, tensor.Shape{rows}, backend)),
		biasHH:   NewParameter(fmt.Sprintf("bias_hh_l%d", layer), Uniform(bound, tensor.Shape{rows}, backend)),
		gates:    gates,
	}
}

// project returns the per-gate input and hidden contributions, each [batch, hidden].
func (w *cellWeights[B]) project(x, h *tensor.Tensor[float32, B]) (gi, gh []*tensor.Tensor[float32, B]) {
	gi = affine(x, w.weightIH, w.biasIH).Chunk(w.gates, 1)
	gh = affine(h, w.weightHH, w.biasHH).Chunk(w.gates, 1)
	return gi, gh
}

func (w *cellWeights[B]) parameters() []*Parameter[B] {
	return []*Parameter[B]{w.weightIH, w.weightHH, w.biasIH, w.biasHH}
}

// affine computes x @ W.T + b for x [batch, in], W [out, in], b [out].
func affine[B tensor.Backend](x *tensor.Tensor[float32, B], w, b *Parameter[B]) *tensor.Tensor[float32, B] {
	bias := b.Tensor()
	return x.MatMul(w.Tensor().T()).Add(bias.Reshape(1, bias.NumElements()))
}

// recurrentStack is the layer bookkeeping shared by GRU and LSTM.
type recurrentStack[B tensor.Backend] struct {
	name       string
	inputSize  int
	hiddenSize int
	numLayers  int
	layers     []*cellWeights[B]
}

func newRecurrentStack[B tensor.Backend](name string, gates, inputSize, hiddenSize, numLayers int, backend B) *recurrentStack[B] {
	if inputSize <= 0 || hiddenSize <= 0 || numLayers <= 0 {
		panic(fmt.Sprintf("%s: sizes must be positive, got input=%d hidden=%d layers=%d",
			name, inputSize, hiddenSize, numLayers))
	}

	layers := make([]*cellWeights[B], numLayers)
	for k := range layers {
		in := hiddenSize
		if k == 0 {
			in = inputSize
		}
		layers[k] = newCellWeights(gates, in, hiddenSize, k, backend)
	}

	return &recurrentStack[B]{
		name:       name,
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		numLayers:  numLayers,
		layers:     layers,
	}
}

// InputSize returns the width of each input timestep.
func (s *recurrentStack[B]) InputSize() int {
	return s.inputSize
}

// HiddenSize returns the width of the recurrent state.
func (s *recurrentStack[B]) HiddenSize() int {
	return s.hiddenSize
}

// NumLayers returns the number of stacked layers.
func (s *recurrentStack[B]) NumLayers() int {
	return s.numLayers
}

// StateShape returns the shape (num_layers, batch, hidden) every state tensor must have.
func (s *recurrentStack[B]) StateShape(batch int) tensor.Shape {
	return tensor.Shape{s.numLayers, batch, s.hiddenSize}
}

// Parameters returns all layer parameters, layer by layer.
func (s *recurrentStack[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 4*s.numLayers)
	for _, l := range s.layers {
		params = append(params, l.parameters()...)
	}
	return params
}

// StateDict returns all layer parameters keyed by their PyTorch-style names.
func (s *recurrentStack[B]) StateDict() map[string]*tensor.RawTensor {
	return stateDictOf(s.Parameters())
}

// LoadStateDict loads every layer parameter, validating shape and dtype.
func (s *recurrentStack[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadParameters(stateDict, s.Parameters())
}

// checkInput validates input [seq_len, batch, input_size] and returns seq_len and batch.
func (s *recurrentStack[B]) checkInput(input *tensor.Tensor[float32, B]) (seqLen, batch int) {
	shape := input.Shape()
	if len(shape) != 3 || shape[2] != s.inputSize {
		panic(fmt.Sprintf("%s.Forward: expected input [seq_len, batch, %d], got %v", s.name, s.inputSize, shape))
	}
	return shape[0], shape[1]
}

func (s *recurrentStack[B]) checkState(what string, state *tensor.Tensor[float32, B], batch int) {
	if state == nil {
		panic(fmt.Sprintf("%s.Forward: %s state is nil", s.name, what))
	}
	if want := s.StateShape(batch); !state.Shape().Equal(want) {
		panic(fmt.Sprintf("%s.Forward: expected %s state %v, got %v", s.name, what, want, state.Shape()))
	}
}

// timesteps splits input [seq_len, batch, in] into seq_len tensors of [batch, in].
func (s *recurrentStack[B]) timesteps(input *tensor.Tensor[float32, B], seqLen, batch int) []*tensor.Tensor[float32, B] {
	steps := input.Chunk(seqLen, 0)
	for t, x := range steps {
		steps[t] = x.Reshape(batch, s.inputSize)
	}
	return steps
}

// splitLayers splits a state [num_layers, batch, hidden] into per-layer [batch, hidden].
func (s *recurrentStack[B]) splitLayers(state *tensor.Tensor[float32, B], batch int) []*tensor.Tensor[float32, B] {
	layers := state.Chunk(s.numLayers, 0)
	for k, h := range layers {
		layers[k] = h.Reshape(batch, s.hiddenSize)
	}
	return layers
}

// joinLayers is the inverse of splitLayers.
func (s *recurrentStack[B]) joinLayers(layers []*tensor.Tensor[float32, B], batch int) *tensor.Tensor[float32, B] {
	return stackSteps(layers, batch, s.hiddenSize)
}

// stackSteps turns n tensors of [batch, hidden] into one [n, batch, hidden].
func stackSteps[B tensor.Backend](steps []*tensor.Tensor[float32, B], batch, hidden int) *tensor.Tensor[float32, B] {
	rows := make([]*tensor.Tensor[float32, B], len(steps))
	for i, x := range steps {
		rows[i] = x.Reshape(1, batch, hidden)
	}
	return tensor.Cat(rows, 0)
}
