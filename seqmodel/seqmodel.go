// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package seqmodel provides a recurrent next-token model: a token embedding,
// a GRU or LSTM stack and a linear projection to logits.
//
// # Basic Usage
//
//	backend := cpu.New()
//	model, err := seqmodel.New(seqmodel.Config{
//	    InputSize:  50,
//	    HiddenSize: 8,
//	    OutputSize: 50,
//	    Variant:    seqmodel.LSTM,
//	}, backend)
//	if err != nil {
//	    return err
//	}
//
//	hidden, _ := model.InitHidden(2, backend)
//	ids, _ := tensor.FromSlice([]int32{3, 17}, tensor.Shape{2}, backend)
//	logits, hidden, err := model.Forward(ids, hidden) // logits [2, 50]
//
// # Hidden state
//
// Hidden wraps either one GRU tensor or an LSTM (hidden, cell) pair, each of
// shape [layers, batch, hidden_size]. Forward never modifies the state it is
// given, so a state can be reused to branch a sequence.
//
// # Errors
//
// Construction fails with ErrUnknownVariant or ErrInvalidConfig. Forward and
// InitHidden validate their arguments and return wrapped sentinel errors;
// test them with errors.Is.
package seqmodel

import (
	"github.com/born-ml/seqrnn/internal/seqmodel"
	"github.com/born-ml/seqrnn/tensor"
)

// Variant selects the recurrent unit.
type Variant = seqmodel.Variant

// Recurrent units.
const (
	GRU  Variant = seqmodel.GRU
	LSTM Variant = seqmodel.LSTM
)

// DefaultLayers is used when Config.Layers is zero.
const DefaultLayers = seqmodel.DefaultLayers

// Config holds the model hyperparameters.
type Config = seqmodel.Config

// Model is an embedding, a recurrent stack and a linear decoder.
type Model[B tensor.Backend] = seqmodel.Model[B]

// Hidden is the recurrent state carried between Forward calls.
type Hidden[B tensor.Backend] = seqmodel.Hidden[B]

// ParameterInfo describes one named model parameter.
type ParameterInfo = seqmodel.ParameterInfo

// Errors returned by the model.
var (
	ErrUnknownVariant = seqmodel.ErrUnknownVariant
	ErrInvalidConfig  = seqmodel.ErrInvalidConfig
	ErrBatchSize      = seqmodel.ErrBatchSize
	ErrDeviceMismatch = seqmodel.ErrDeviceMismatch
	ErrInputShape     = seqmodel.ErrInputShape
	ErrTokenRange     = seqmodel.ErrTokenRange
	ErrHiddenKind     = seqmodel.ErrHiddenKind
	ErrHiddenShape    = seqmodel.ErrHiddenShape
)

// New validates cfg and builds a model with parameters on backend.
func New[B tensor.Backend](cfg Config, backend B) (*Model[B], error) {
	return seqmodel.New(cfg, backend)
}

// ParseVariant parses "gru" or "lstm", ignoring case.
func ParseVariant(s string) (Variant, error) {
	return seqmodel.ParseVariant(s)
}

// GRUHidden wraps a [layers, batch, hidden] tensor as a GRU state.
func GRUHidden[B tensor.Backend](h *tensor.Tensor[float32, B]) Hidden[B] {
	return seqmodel.GRUHidden(h)
}

// LSTMHidden wraps a (hidden, cell) pair as an LSTM state.
func LSTMHidden[B tensor.Backend](h, c *tensor.Tensor[float32, B]) Hidden[B] {
	return seqmodel.LSTMHidden(h, c)
}
