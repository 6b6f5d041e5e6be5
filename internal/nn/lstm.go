package nn

import (
	"github.com/born-ml/seqrnn/internal/tensor"
)

// LSTMState is the (hidden, cell) pair carried by an LSTM.
// Both tensors have shape [num_layers, batch, hidden_size].
type LSTMState[B tensor.Backend] struct {
	H *tensor.Tensor[float32, B] // hidden state
	C *tensor.Tensor[float32, B] // cell state
}

// LSTM is a multi-layer long short-term memory unit.
//
// For every layer and timestep:
//
//	i  = σ(W_ii x + b_ii + W_hi h + b_hi)
//	f  = σ(W_if x + b_if + W_hf h + b_hf)
//	g  = tanh(W_ig x + b_ig + W_hg h + b_hg)
//	o  = σ(W_io x + b_io + W_ho h + b_ho)
//	c' = f ⊙ c + i ⊙ g
//	h' = o ⊙ tanh(c')
type LSTM[B tensor.Backend] struct {
	*recurrentStack[B]
}

// NewLSTM creates an LSTM with weights drawn from U(-1/sqrt(hidden), 1/sqrt(hidden)).
//
// Panics if any size is not positive.
func NewLSTM[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *LSTM[B] {
	return &LSTM[B]{
		recurrentStack: newRecurrentStack("LSTM", 4, inputSize, hiddenSize, numLayers, backend),
	}
}

// Forward runs the LSTM over a whole sequence.
//
// Parameters:
//   - input: [seq_len, batch, input_size]
//   - state: hidden and cell, each [num_layers, batch, hidden_size]
//
// Returns the last layer's hidden state at every step [seq_len, batch, hidden_size]
// and the final (hidden, cell) pair. Panics on shape mismatch.
func (l *LSTM[B]) Forward(input *tensor.Tensor[float32, B], state LSTMState[B]) (*tensor.Tensor[float32, B], LSTMState[B]) {
	seqLen, batch := l.checkInput(input)
	l.checkState("hidden", state.H, batch)
	l.checkState("cell", state.C, batch)

	hs := l.splitLayers(state.H, batch)
	cs := l.splitLayers(state.C, batch)
	outputs := make([]*tensor.Tensor[float32, B], seqLen)

	for t, x := range l.timesteps(input, seqLen, batch) {
		for k, layer := range l.layers {
			hs[k], cs[k] = lstmCell(layer, x, hs[k], cs[k])
			x = hs[k]
		}
		outputs[t] = x
	}

	return stackSteps(outputs, batch, l.hiddenSize), LSTMState[B]{
		H: l.joinLayers(hs, batch),
		C: l.joinLayers(cs, batch),
	}
}

// lstmCell advances one layer by one timestep.
func lstmCell[B tensor.Backend](w *cellWeights[B], x, h, c *tensor.Tensor[float32, B]) (hNext, cNext *tensor.Tensor[float32, B]) {
	gi, gh := w.project(x, h)

	i := SigmoidFunc(gi[0].Add(gh[0]))
	f := SigmoidFunc(gi[1].Add(gh[1]))
	g := TanhFunc(gi[2].Add(gh[2]))
	o := SigmoidFunc(gi[3].Add(gh[3]))

	cNext = f.Mul(c).Add(i.Mul(g))
	hNext = o.Mul(TanhFunc(cNext))
	return hNext, cNext
}
