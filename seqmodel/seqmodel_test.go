// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package seqmodel_test

import (
	"errors"
	"testing"

	"github.com/born-ml/seqrnn/backend/cpu"
	"github.com/born-ml/seqrnn/seqmodel"
	"github.com/born-ml/seqrnn/tensor"
)

func TestPublicAPI(t *testing.T) {
	backend := cpu.New()
	for _, name := range []string{"gru", "LSTM"} {
		variant, err := seqmodel.ParseVariant(name)
		if err != nil {
			t.Fatalf("ParseVariant(%q): %v", name, err)
		}
		model, err := seqmodel.New(seqmodel.Config{
			InputSize: 50, HiddenSize: 8, OutputSize: 50, Variant: variant,
		}, backend)
		if err != nil {
			t.Fatalf("New(%s): %v", variant, err)
		}

		hidden, err := model.InitHidden(2, backend)
		if err != nil {
			t.Fatalf("InitHidden: %v", err)
		}
		ids, _ := tensor.FromSlice([]int32{3, 17}, tensor.Shape{2}, backend)
		logits, next, err := model.Forward(ids, hidden)
		if err != nil {
			t.Fatalf("Forward: %v", err)
		}
		if !logits.Shape().Equal(tensor.Shape{2, 50}) {
			t.Errorf("%s logits shape = %v, want [2 50]", variant, logits.Shape())
		}
		for _, h := range next.Tensors() {
			if !h.Shape().Equal(tensor.Shape{1, 2, 8}) {
				t.Errorf("%s hidden shape = %v, want [1 2 8]", variant, h.Shape())
			}
		}
	}
}

func TestPublicErrors(t *testing.T) {
	if _, err := seqmodel.ParseVariant("rnn"); !errors.Is(err, seqmodel.ErrUnknownVariant) {
		t.Errorf("ParseVariant(rnn) = %v, want ErrUnknownVariant", err)
	}

	backend := cpu.New()
	model, err := seqmodel.New(seqmodel.Config{InputSize: 5, HiddenSize: 3, OutputSize: 5, Variant: seqmodel.GRU}, backend)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	state := seqmodel.LSTMHidden(
		tensor.Zeros[float32](tensor.Shape{1, 1, 3}, backend),
		tensor.Zeros[float32](tensor.Shape{1, 1, 3}, backend),
	)
	if _, _, err := model.ForwardOne(1, state); !errors.Is(err, seqmodel.ErrHiddenKind) {
		t.Errorf("ForwardOne(lstm state) = %v, want ErrHiddenKind", err)
	}
}
