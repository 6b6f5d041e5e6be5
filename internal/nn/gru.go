package nn

import (
	"github.com/born-ml/seqrnn/internal/tensor"
)

// GRU is a multi-layer gated recurrent unit.
//
// For every layer and timestep:
//
//	r  = σ(W_ir x + b_ir + W_hr h + b_hr)
//	z  = σ(W_iz x + b_iz + W_hz h + b_hz)
//	n  = tanh(W_in x + b_in + r ⊙ (W_hn h + b_hn))
//	h' = (1 - z) ⊙ n + z ⊙ h
//
// Layer k > 0 consumes the new hidden state of layer k-1 as its input.
//
// Example:
//
//	gru := nn.NewGRU(8, 8, 2, backend)
//	h0 := tensor.Zeros[float32](gru.StateShape(batch), backend)
//	out, hn := gru.Forward(x, h0) // x: [seq_len, batch, 8]
type GRU[B tensor.Backend] struct {
	*recurrentStack[B]
}

// NewGRU creates a GRU with weights drawn from U(-1/sqrt(hidden), 1/sqrt(hidden)).
//
// Panics if any size is not positive.
func NewGRU[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *GRU[B] {
	return &GRU[B]{
		recurrentStack: newRecurrentStack("GRU", 3, inputSize, hiddenSize, numLayers, backend),
	}
}

// Forward runs the GRU over a whole sequence.
//
// Parameters:
//   - input: [seq_len, batch, input_size]
//   - h0: [num_layers, batch, hidden_size]
//
// Returns:
//   - output: [seq_len, batch, hidden_size], the last layer's state at every step
//   - hn: [num_layers, batch, hidden_size], every layer's state after the last step
//
// Neither input nor h0 is modified. Panics on shape mismatch.
func (g *GRU[B]) Forward(input, h0 *tensor.Tensor[float32, B]) (output, hn *tensor.Tensor[float32, B]) {
	seqLen, batch := g.checkInput(input)
	g.checkState("hidden", h0, batch)

	states := g.splitLayers(h0, batch)
	outputs := make([]*tensor.Tensor[float32, B], seqLen)

	for t, x := range g.timesteps(input, seqLen, batch) {
		for k, layer := range g.layers {
			states[k] = gruCell(layer, x, states[k])
			x = states[k]
		}
		outputs[t] = x
	}

	return stackSteps(outputs, batch, g.hiddenSize), g.joinLayers(states, batch)
}

// gruCell advances one layer by one timestep. x is [batch, in], h is [batch, hidden].
func gruCell[B tensor.Backend](w *cellWeights[B], x, h *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	gi, gh := w.project(x, h)

	r := SigmoidFunc(gi[0].Add(gh[0]))
	z := SigmoidFunc(gi[1].Add(gh[1]))
	n := TanhFunc(gi[2].Add(r.Mul(gh[2])))

	// (1 - z) ⊙ n + z ⊙ h == n + z ⊙ (h - n)
	return n.Add(z.Mul(h.Sub(n)))
}
