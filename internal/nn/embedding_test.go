package nn_test

import (
	"testing"

	"github.com/born-ml/seqrnn/internal/backend/cpu"
	"github.com/born-ml/seqrnn/internal/nn"
	"github.com/born-ml/seqrnn/internal/tensor"
)

func TestEmbedding_Forward_Basic(t *testing.T) {
	backend := cpu.New()

	weightData := []float32{
		1.0, 2.0, 3.0, // embedding 0
		4.0, 5.0, 6.0, // embedding 1
		7.0, 8.0, 9.0, // embedding 2
		10.0, 11.0, 12.0, // embedding 3
		13.0, 14.0, 15.0, // embedding 4
	}
	weight, err := tensor.FromSlice(weightData, tensor.Shape{5, 3}, backend)
	if err != nil {
		t.Fatalf("Failed to create weight: %v", err)
	}
	embed := nn.NewEmbeddingWithWeight(weight)

	indices, err := tensor.FromSlice([]int32{4, 0}, tensor.Shape{2}, backend)
	if err != nil {
		t.Fatalf("Failed to create indices: %v", err)
	}

	output := embed.Forward(indices)

	if !output.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", output.Shape())
	}

	expected := []float32{13, 14, 15, 1, 2, 3}
	for i, v := range output.Data() {
		if v != expected[i] {
			t.Errorf("output[%d] = %v, want %v", i, v, expected[i])
		}
	}
}

func TestEmbedding_Forward_Batched(t *testing.T) {
	backend := cpu.New()

	embed := nn.NewEmbedding(10, 4, backend)
	data := embed.Weight.Tensor().Data()
	for i := range data {
		data[i] = float32(i)
	}

	// [batch=2, seq=3]
	indices, err := tensor.FromSlice([]int32{0, 1, 2, 3, 4, 5}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("Failed to create indices: %v", err)
	}

	output := embed.Forward(indices)

	if !output.Shape().Equal(tensor.Shape{2, 3, 4}) {
		t.Fatalf("Expected shape [2 3 4], got %v", output.Shape())
	}

	// Second batch, third token is index 5: values 20..23 at offset (1*3+2)*4.
	out := output.Data()
	for j := 0; j < 4; j++ {
		if out[20+j] != float32(20+j) {
			t.Errorf("embedding 5[%d] = %v, want %v", j, out[20+j], 20+j)
		}
	}
}

func TestEmbedding_Forward_OutOfBounds(t *testing.T) {
	backend := cpu.New()
	embed := nn.NewEmbedding(5, 3, backend)

	tests := []struct {
		name    string
		indices []int32
	}{
		{"negative", []int32{-1}},
		{"equal to size", []int32{5}},
		{"far out", []int32{0, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices, err := tensor.FromSlice(tt.indices, tensor.Shape{len(tt.indices)}, backend)
			if err != nil {
				t.Fatalf("Failed to create indices: %v", err)
			}

			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic for out of bounds index")
				}
			}()
			embed.Forward(indices)
		})
	}
}

func TestEmbedding_Parameters(t *testing.T) {
	backend := cpu.New()
	embed := nn.NewEmbedding(7, 2, backend)

	if embed.NumEmbed != 7 || embed.EmbedDim != 2 {
		t.Errorf("dims = (%d, %d), want (7, 2)", embed.NumEmbed, embed.EmbedDim)
	}
	params := embed.Parameters()
	if len(params) != 1 || params[0].Name() != "weight" {
		t.Errorf("unexpected parameters %v", params)
	}

	other := nn.NewEmbedding(7, 2, backend)
	if err := other.LoadStateDict(embed.StateDict()); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}
	a, b := embed.Weight.Tensor().Data(), other.Weight.Tensor().Data()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("weight[%d] = %v, want %v", i, b[i], a[i])
		}
	}
}
