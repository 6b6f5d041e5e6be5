package seqmodel

import (
	"github.com/born-ml/seqrnn/internal/tensor"
)

// Hidden is the recurrent state carried between forward steps.
//
// A GRU state holds one tensor; an LSTM state holds a (hidden, cell) pair.
// Every tensor has shape [layers, batch, hidden_size]. Forward never modifies
// a Hidden and always returns a fresh one. The accessors return the live
// tensors, so writing through them changes the state; use Clone first to branch.
type Hidden[B tensor.Backend] struct {
	variant Variant
	h       *tensor.Tensor[float32, B]
	c       *tensor.Tensor[float32, B]
}

// GRUHidden wraps h as a GRU hidden state.
func GRUHidden[B tensor.Backend](h *tensor.Tensor[float32, B]) Hidden[B] {
	return Hidden[B]{variant: GRU, h: h}
}

// LSTMHidden wraps the (hidden, cell) pair as an LSTM hidden state.
func LSTMHidden[B tensor.Backend](h, c *tensor.Tensor[float32, B]) Hidden[B] {
	return Hidden[B]{variant: LSTM, h: h, c: c}
}

// Variant reports which recurrent unit the state belongs to.
func (s Hidden[B]) Variant() Variant {
	return s.variant
}

// Tensor returns the hidden tensor (for LSTM, the h half of the pair).
func (s Hidden[B]) Tensor() *tensor.Tensor[float32, B] {
	return s.h
}

// Cell returns the LSTM cell tensor, or nil for a GRU state.
func (s Hidden[B]) Cell() *tensor.Tensor[float32, B] {
	return s.c
}

// Pair returns the LSTM (hidden, cell) pair.
func (s Hidden[B]) Pair() (h, c *tensor.Tensor[float32, B]) {
	return s.h, s.c
}

// Tensors lists the tensors making up the state, hidden first.
func (s Hidden[B]) Tensors() []*tensor.Tensor[float32, B] {
	if s.variant == LSTM {
		return []*tensor.Tensor[float32, B]{s.h, s.c}
	}
	return []*tensor.Tensor[float32, B]{s.h}
}

// Clone deep-copies the state so a sequence can be branched.
func (s Hidden[B]) Clone() Hidden[B] {
	out := Hidden[B]{variant: s.variant}
	if s.h != nil {
		out.h = s.h.Clone()
	}
	if s.c != nil {
		out.c = s.c.Clone()
	}
	return out
}
