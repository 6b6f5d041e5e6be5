// Package seqmodel implements a recurrent next-token model.
//
// A Model embeds a batch of token ids, advances a GRU or LSTM stack by one
// timestep and projects the top layer's output to logits:
//
//	ids [batch] -> Embedding -> [1, batch, hidden] -> GRU/LSTM -> [batch, hidden] -> Linear -> [batch, output]
//
// Example:
//
//	backend := cpu.New()
//	model, err := seqmodel.New(seqmodel.Config{
//	    InputSize: 50, HiddenSize: 8, OutputSize: 50, Variant: seqmodel.GRU,
//	}, backend)
//	hidden, _ := model.InitHidden(2, backend)
//	ids, _ := tensor.FromSlice([]int32{3, 17}, tensor.Shape{2}, backend)
//	logits, hidden, err := model.Forward(ids, hidden) // logits: [2, 50]
package seqmodel

import (
	"fmt"

	"github.com/born-ml/seqrnn/internal/nn"
	"github.com/born-ml/seqrnn/internal/tensor"
)

// State dict key prefixes of the three sub-modules.
const (
	encoderPrefix = "encoder."
	rnnPrefix     = "rnn."
	decoderPrefix = "decoder."
)

// Model is an embedding, a recurrent stack and a linear decoder.
//
// Parameters are only read by Forward and InitHidden, so one Model may be
// shared by goroutines that each carry their own Hidden.
type Model[B tensor.Backend] struct {
	cfg     Config
	backend B

	encoder *nn.Embedding[B]
	gru     *nn.GRU[B]  // set when cfg.Variant == GRU
	lstm    *nn.LSTM[B] // set when cfg.Variant == LSTM
	decoder *nn.Linear[B]
}

// New validates cfg and allocates every parameter on backend.
//
// Layers == 0 is replaced by DefaultLayers. An unknown variant or a
// non-positive size is returned as an error wrapping ErrUnknownVariant or
// ErrInvalidConfig.
func New[B tensor.Backend](cfg Config, backend B) (*Model[B], error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("seqmodel: %w", err)
	}

	m := &Model[B]{
		cfg:     cfg,
		backend: backend,
		encoder: nn.NewEmbedding(cfg.InputSize, cfg.HiddenSize, backend),
		decoder: nn.NewLinear(cfg.HiddenSize, cfg.OutputSize, backend),
	}
	switch cfg.Variant {
	case GRU:
		m.gru = nn.NewGRU(cfg.HiddenSize, cfg.HiddenSize, cfg.Layers, backend)
	case LSTM:
		m.lstm = nn.NewLSTM(cfg.HiddenSize, cfg.HiddenSize, cfg.Layers, backend)
	}
	return m, nil
}

// Config returns the normalized configuration the model was built with.
func (m *Model[B]) Config() Config {
	return m.cfg
}

// Variant returns the recurrent unit type.
func (m *Model[B]) Variant() Variant {
	return m.cfg.Variant
}

// Backend returns the backend holding the parameters.
func (m *Model[B]) Backend() B {
	return m.backend
}

// Encoder returns the token embedding.
func (m *Model[B]) Encoder() *nn.Embedding[B] {
	return m.encoder
}

// Decoder returns the output projection.
func (m *Model[B]) Decoder() *nn.Linear[B] {
	return m.decoder
}

// StateShape returns the shape of each hidden tensor for a batch.
func (m *Model[B]) StateShape(batchSize int) tensor.Shape {
	return tensor.Shape{m.cfg.Layers, batchSize, m.cfg.HiddenSize}
}

// InitHidden returns a zero state for batchSize sequences, allocated on backend.
//
// An LSTM state gets two independent tensors. backend must be on the same
// device as the model parameters.
func (m *Model[B]) InitHidden(batchSize int, backend B) (Hidden[B], error) {
	if batchSize <= 0 {
		return Hidden[B]{}, fmt.Errorf("seqmodel: %w: got %d", ErrBatchSize, batchSize)
	}
	if backend.Device() != m.backend.Device() {
		return Hidden[B]{}, fmt.Errorf("seqmodel: %w: parameters on %s, requested %s",
			ErrDeviceMismatch, m.backend.Device(), backend.Device())
	}

	shape := m.StateShape(batchSize)
	if m.cfg.Variant == LSTM {
		return LSTMHidden(tensor.Zeros[float32](shape, backend), tensor.Zeros[float32](shape, backend)), nil
	}
	return GRUHidden(tensor.Zeros[float32](shape, backend)), nil
}

// Forward advances the model by one timestep.
//
// input holds one token id per sequence, shape [batch]. hidden must come from
// InitHidden or a previous Forward with the same batch size. Returns logits of
// shape [batch, output_size] and the next state. Neither input nor hidden is
// modified.
func (m *Model[B]) Forward(input *tensor.Tensor[int32, B], hidden Hidden[B]) (*tensor.Tensor[float32, B], Hidden[B], error) {
	batch, err := m.checkInput(input)
	if err != nil {
		return nil, Hidden[B]{}, err
	}
	if err := m.checkHidden(hidden, batch); err != nil {
		return nil, Hidden[B]{}, err
	}

	hiddenSize := m.cfg.HiddenSize
	x := m.encoder.Forward(input).Reshape(1, batch, hiddenSize)

	var (
		out  *tensor.Tensor[float32, B]
		next Hidden[B]
	)
	switch m.cfg.Variant {
	case GRU:
		var hn *tensor.Tensor[float32, B]
		out, hn = m.gru.Forward(x, hidden.h)
		next = GRUHidden(hn)
	case LSTM:
		var st nn.LSTMState[B]
		out, st = m.lstm.Forward(x, nn.LSTMState[B]{H: hidden.h, C: hidden.c})
		next = LSTMHidden(st.H, st.C)
	}

	logits := m.decoder.Forward(out.Reshape(batch, hiddenSize))
	return logits, next, nil
}

// ForwardOne runs Forward for a single token and returns logits of shape
// [output_size]. hidden must have batch size 1.
func (m *Model[B]) ForwardOne(token int32, hidden Hidden[B]) (*tensor.Tensor[float32, B], Hidden[B], error) {
	ids, err := tensor.FromSlice([]int32{token}, tensor.Shape{1}, m.backend)
	if err != nil {
		return nil, Hidden[B]{}, fmt.Errorf("seqmodel: %w", err)
	}
	logits, next, err := m.Forward(ids, hidden)
	if err != nil {
		return nil, Hidden[B]{}, err
	}
	return logits.Reshape(m.cfg.OutputSize), next, nil
}

func (m *Model[B]) checkInput(input *tensor.Tensor[int32, B]) (int, error) {
	if input == nil {
		return 0, fmt.Errorf("seqmodel: %w: input is nil", ErrInputShape)
	}
	if input.Device() != m.backend.Device() {
		return 0, fmt.Errorf("seqmodel: %w: input on %s, parameters on %s",
			ErrDeviceMismatch, input.Device(), m.backend.Device())
	}
	shape := input.Shape()
	if len(shape) != 1 || shape[0] == 0 {
		return 0, fmt.Errorf("seqmodel: %w: got shape %v", ErrInputShape, shape)
	}
	for i, id := range input.Data() {
		if id < 0 || int(id) >= m.cfg.InputSize {
			return 0, fmt.Errorf("seqmodel: %w: input[%d] = %d, vocabulary size %d",
				ErrTokenRange, i, id, m.cfg.InputSize)
		}
	}
	return shape[0], nil
}

func (m *Model[B]) checkHidden(hidden Hidden[B], batch int) error {
	if hidden.variant != m.cfg.Variant {
		return fmt.Errorf("seqmodel: %w: model is %s, state is %s", ErrHiddenKind, m.cfg.Variant, hidden.variant)
	}
	want := m.StateShape(batch)
	names := []string{"hidden", "cell"}
	for i, t := range hidden.Tensors() {
		if t == nil {
			return fmt.Errorf("seqmodel: %w: %s tensor is nil", ErrHiddenShape, names[i])
		}
		if t.Device() != m.backend.Device() {
			return fmt.Errorf("seqmodel: %w: %s state on %s, parameters on %s",
				ErrDeviceMismatch, names[i], t.Device(), m.backend.Device())
		}
		if !t.Shape().Equal(want) {
			return fmt.Errorf("seqmodel: %w: %s state has shape %v, want %v",
				ErrHiddenShape, names[i], t.Shape(), want)
		}
	}
	return nil
}

// ParameterInfo describes one named parameter.
type ParameterInfo struct {
	Name  string       `json:"name"`
	Shape tensor.Shape `json:"shape"`
	Count int          `json:"count"`
}

// Parameters returns every parameter: encoder, recurrent stack, decoder.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	params := m.encoder.Parameters()
	params = append(params, m.rnnParameters()...)
	return append(params, m.decoder.Parameters()...)
}

// NumParameters returns the total number of scalar parameters.
func (m *Model[B]) NumParameters() int {
	n := 0
	for _, p := range m.Parameters() {
		n += p.NumElements()
	}
	return n
}

// Summary lists parameters with their fully qualified names, in Parameters order.
func (m *Model[B]) Summary() []ParameterInfo {
	var out []ParameterInfo
	add := func(prefix string, params []*nn.Parameter[B]) {
		for _, p := range params {
			out = append(out, ParameterInfo{
				Name:  prefix + p.Name(),
				Shape: p.Tensor().Shape().Clone(),
				Count: p.NumElements(),
			})
		}
	}
	add(encoderPrefix, m.encoder.Parameters())
	add(rnnPrefix, m.rnnParameters())
	add(decoderPrefix, m.decoder.Parameters())
	return out
}

// StateDict exports every parameter keyed by "encoder.", "rnn." or "decoder."
// followed by the layer's own parameter name. The returned tensors alias the
// model's storage.
func (m *Model[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	merge := func(prefix string, sub map[string]*tensor.RawTensor) {
		for k, v := range sub {
			stateDict[prefix+k] = v
		}
	}
	merge(encoderPrefix, m.encoder.StateDict())
	merge(rnnPrefix, m.rnn().StateDict())
	merge(decoderPrefix, m.decoder.StateDict())
	return stateDict
}

// LoadStateDict copies parameters from stateDict into the model.
//
// Every key produced by StateDict must be present with a matching shape and
// dtype. Extra keys are ignored. All entries are checked before anything is
// copied, so a failed load leaves the model unchanged.
func (m *Model[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	err := nn.LoadParameters(stateDict,
		nn.ParameterGroup[B]{Prefix: encoderPrefix, Params: m.encoder.Parameters()},
		nn.ParameterGroup[B]{Prefix: rnnPrefix, Params: m.rnnParameters()},
		nn.ParameterGroup[B]{Prefix: decoderPrefix, Params: m.decoder.Parameters()},
	)
	if err != nil {
		return fmt.Errorf("seqmodel: %w", err)
	}
	return nil
}

func (m *Model[B]) rnn() nn.StateDicter {
	if m.cfg.Variant == LSTM {
		return m.lstm
	}
	return m.gru
}

func (m *Model[B]) rnnParameters() []*nn.Parameter[B] {
	if m.cfg.Variant == LSTM {
		return m.lstm.Parameters()
	}
	return m.gru.Parameters()
}
