package nn

import (
	"math"
	"testing"

	"github.com/born-ml/seqrnn/internal/backend/cpu"
	"github.com/born-ml/seqrnn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *cpu.CPUBackend

func sigmoid64(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// gateSums returns W_ih x + b_ih and W_hh h + b_hh for one batch row, computed in float64.
func gateSums(w *cellWeights[Backend], x, h []float64) (gi, gh []float64) {
	wih := w.weightIH.Tensor()
	whh := w.weightHH.Tensor()
	rows := wih.Shape()[0]
	gi = make([]float64, rows)
	gh = make([]float64, rows)
	for r := 0; r < rows; r++ {
		gi[r] = float64(w.biasIH.Tensor().Data()[r])
		for c := range x {
			gi[r] += float64(wih.At(r, c)) * x[c]
		}
		gh[r] = float64(w.biasHH.Tensor().Data()[r])
		for c := range h {
			gh[r] += float64(whh.At(r, c)) * h[c]
		}
	}
	return gi, gh
}

func refGRU(w *cellWeights[Backend], x, h []float64) []float64 {
	gi, gh := gateSums(w, x, h)
	n := len(h)
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		r := sigmoid64(gi[j] + gh[j])
		z := sigmoid64(gi[n+j] + gh[n+j])
		c := math.Tanh(gi[2*n+j] + r*gh[2*n+j])
		out[j] = (1-z)*c + z*h[j]
	}
	return out
}

func refLSTM(w *cellWeights[Backend], x, h, c []float64) (hOut, cOut []float64) {
	gi, gh := gateSums(w, x, h)
	n := len(h)
	hOut = make([]float64, n)
	cOut = make([]float64, n)
	for j := 0; j < n; j++ {
		i := sigmoid64(gi[j] + gh[j])
		f := sigmoid64(gi[n+j] + gh[n+j])
		g := math.Tanh(gi[2*n+j] + gh[2*n+j])
		o := sigmoid64(gi[3*n+j] + gh[3*n+j])
		cOut[j] = f*c[j] + i*g
		hOut[j] = o * math.Tanh(cOut[j])
	}
	return hOut, cOut
}

func row(data []float32, i, width int) []float64 {
	out := make([]float64, width)
	for j := range out {
		out[j] = float64(data[i*width+j])
	}
	return out
}

func randomTensor(t *testing.T, shape tensor.Shape, backend Backend) *tensor.Tensor[float32, Backend] {
	t.Helper()
	return Uniform(1.0, shape, backend)
}

func TestGRU_Shapes(t *testing.T) {
	backend := cpu.New()
	gru := NewGRU(5, 4, 3, backend)

	assert.Equal(t, 5, gru.InputSize())
	assert.Equal(t, 4, gru.HiddenSize())
	assert.Equal(t, 3, gru.NumLayers())
	assert.Len(t, gru.Parameters(), 12)

	assert.True(t, gru.layers[0].weightIH.Tensor().Shape().Equal(tensor.Shape{12, 5}))
	assert.True(t, gru.layers[1].weightIH.Tensor().Shape().Equal(tensor.Shape{12, 4}))
	assert.True(t, gru.layers[2].weightHH.Tensor().Shape().Equal(tensor.Shape{12, 4}))
	assert.True(t, gru.layers[2].biasIH.Tensor().Shape().Equal(tensor.Shape{12}))

	x := randomTensor(t, tensor.Shape{6, 2, 5}, backend)
	h0 := tensor.Zeros[float32](gru.StateShape(2), backend)

	out, hn := gru.Forward(x, h0)

	assert.True(t, out.Shape().Equal(tensor.Shape{6, 2, 4}))
	assert.True(t, hn.Shape().Equal(tensor.Shape{3, 2, 4}))
}

func TestGRU_MatchesReference(t *testing.T) {
	backend := cpu.New()
	const in, hidden, batch = 3, 4, 2
	gru := NewGRU(in, hidden, 2, backend)

	x := randomTensor(t, tensor.Shape{1, batch, in}, backend)
	h0 := randomTensor(t, gru.StateShape(batch), backend)

	out, hn := gru.Forward(x, h0)

	xd, hd := x.Data(), h0.Data()
	for b := 0; b < batch; b++ {
		h1 := refGRU(gru.layers[0], row(xd, b, in), row(hd, b, hidden))
		h2 := refGRU(gru.layers[1], h1, row(hd, batch+b, hidden))

		assert.InDeltaSlice(t, h1, row(hn.Data(), b, hidden), 1e-5, "layer 0, batch %d", b)
		assert.InDeltaSlice(t, h2, row(hn.Data(), batch+b, hidden), 1e-5, "layer 1, batch %d", b)
		assert.InDeltaSlice(t, h2, row(out.Data(), b, hidden), 1e-5, "output, batch %d", b)
	}
}

func TestGRU_SequenceEqualsRepeatedSteps(t *testing.T) {
	backend := cpu.New()
	gru := NewGRU(3, 3, 2, backend)

	x := randomTensor(t, tensor.Shape{4, 1, 3}, backend)
	h := tensor.Zeros[float32](gru.StateShape(1), backend)

	seqOut, seqH := gru.Forward(x, h)

	steps := x.Chunk(4, 0)
	for i, step := range steps {
		var out *tensor.Tensor[float32, Backend]
		out, h = gru.Forward(step, h)
		assert.Equal(t, row(seqOut.Data(), i, 3), row(out.Data(), 0, 3))
	}
	assert.Equal(t, seqH.Data(), h.Data())
}

func TestGRU_DoesNotMutateInputs(t *testing.T) {
	backend := cpu.New()
	gru := NewGRU(2, 2, 1, backend)

	x := randomTensor(t, tensor.Shape{1, 1, 2}, backend)
	h0 := randomTensor(t, gru.StateShape(1), backend)
	xCopy := append([]float32(nil), x.Data()...)
	hCopy := append([]float32(nil), h0.Data()...)

	gru.Forward(x, h0)

	assert.Equal(t, xCopy, x.Data())
	assert.Equal(t, hCopy, h0.Data())
}

func TestGRU_BadShapesPanic(t *testing.T) {
	backend := cpu.New()
	gru := NewGRU(2, 3, 2, backend)
	x := tensor.Zeros[float32](tensor.Shape{1, 4, 2}, backend)

	assert.Panics(t, func() { gru.Forward(x, tensor.Zeros[float32](tensor.Shape{1, 4, 3}, backend)) })
	assert.Panics(t, func() { gru.Forward(x, tensor.Zeros[float32](tensor.Shape{2, 5, 3}, backend)) })
	assert.Panics(t, func() { gru.Forward(x, nil) })
	assert.Panics(t, func() {
		gru.Forward(tensor.Zeros[float32](tensor.Shape{4, 2}, backend), tensor.Zeros[float32](gru.StateShape(4), backend))
	})
	assert.Panics(t, func() { NewGRU(0, 3, 1, backend) })
}

func TestLSTM_MatchesReference(t *testing.T) {
	backend := cpu.New()
	const in, hidden, batch = 3, 2, 2
	lstm := NewLSTM(in, hidden, 2, backend)

	assert.Len(t, lstm.Parameters(), 8)
	assert.True(t, lstm.layers[0].weightIH.Tensor().Shape().Equal(tensor.Shape{8, 3}))

	x := randomTensor(t, tensor.Shape{1, batch, in}, backend)
	state := LSTMState[Backend]{
		H: randomTensor(t, lstm.StateShape(batch), backend),
		C: randomTensor(t, lstm.StateShape(batch), backend),
	}

	out, next := lstm.Forward(x, state)
	require.True(t, next.H.Shape().Equal(tensor.Shape{2, batch, hidden}))
	require.True(t, next.C.Shape().Equal(tensor.Shape{2, batch, hidden}))

	xd, hd, cd := x.Data(), state.H.Data(), state.C.Data()
	for b := 0; b < batch; b++ {
		h1, c1 := refLSTM(lstm.layers[0], row(xd, b, in), row(hd, b, hidden), row(cd, b, hidden))
		h2, c2 := refLSTM(lstm.layers[1], h1, row(hd, batch+b, hidden), row(cd, batch+b, hidden))

		assert.InDeltaSlice(t, h1, row(next.H.Data(), b, hidden), 1e-5)
		assert.InDeltaSlice(t, c1, row(next.C.Data(), b, hidden), 1e-5)
		assert.InDeltaSlice(t, h2, row(next.H.Data(), batch+b, hidden), 1e-5)
		assert.InDeltaSlice(t, c2, row(next.C.Data(), batch+b, hidden), 1e-5)
		assert.InDeltaSlice(t, h2, row(out.Data(), b, hidden), 1e-5)
	}
}

func TestLSTM_MissingCellPanics(t *testing.T) {
	backend := cpu.New()
	lstm := NewLSTM(2, 2, 1, backend)
	x := tensor.Zeros[float32](tensor.Shape{1, 1, 2}, backend)

	assert.Panics(t, func() {
		lstm.Forward(x, LSTMState[Backend]{H: tensor.Zeros[float32](lstm.StateShape(1), backend)})
	})
}

func TestRecurrent_StateDictNames(t *testing.T) {
	backend := cpu.New()
	lstm := NewLSTM(2, 3, 2, backend)

	sd := lstm.StateDict()
	for _, key := range []string{
		"weight_ih_l0", "weight_hh_l0", "bias_ih_l0", "bias_hh_l0",
		"weight_ih_l1", "weight_hh_l1", "bias_ih_l1", "bias_hh_l1",
	} {
		assert.Contains(t, sd, key)
	}

	other := NewLSTM(2, 3, 2, backend)
	require.NoError(t, other.LoadStateDict(sd))
	assert.Equal(t, lstm.layers[1].weightHH.Tensor().Data(), other.layers[1].weightHH.Tensor().Data())

	assert.ErrorIs(t, NewLSTM(2, 4, 2, backend).LoadStateDict(sd), ErrParameterShape)
}

func TestRecurrent_FailedLoadKeepsWeights(t *testing.T) {
	backend := cpu.New()
	gru := NewGRU(2, 3, 2, backend)
	before := gru.layers[0].weightIH.Tensor().Clone().Data()

	sd := NewGRU(2, 3, 2, backend).StateDict()
	bad, err := tensor.NewRaw(tensor.Shape{9, 4}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	sd["bias_hh_l1"] = bad

	assert.ErrorIs(t, gru.LoadStateDict(sd), ErrParameterShape)
	assert.Equal(t, before, gru.layers[0].weightIH.Tensor().Data())
}
