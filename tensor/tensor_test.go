// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/seqrnn/backend/cpu"
	"github.com/born-ml/seqrnn/tensor"
)

// TestBackendInterface verifies that cpu.Backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if got := len(raw.AsFloat32()); got != 6 {
		t.Errorf("len(AsFloat32()) = %d, want 6", got)
	}
}

func TestCreationAndOps(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	ones := tensor.Ones[float32](tensor.Shape{3}, backend)

	sum := x.Add(ones)
	want := []float32{2, 3, 4, 5, 6, 7}
	for i, v := range sum.Data() {
		if v != want[i] {
			t.Errorf("Add()[%d] = %v, want %v", i, v, want[i])
		}
	}

	gram := x.MatMul(x.T())
	if !gram.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("MatMul shape = %v, want [2 2]", gram.Shape())
	}
	if got := gram.At(0, 1); got != 32 {
		t.Errorf("gram[0,1] = %v, want 32", got)
	}

	cat := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{x, x}, 0)
	if !cat.Shape().Equal(tensor.Shape{4, 3}) {
		t.Errorf("Cat shape = %v, want [4 3]", cat.Shape())
	}

	if _, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{3}, backend); err == nil {
		t.Error("FromSlice accepted a length mismatch")
	}
}
