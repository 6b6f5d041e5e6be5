package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{1, 2}.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShape_NormalizeDim(t *testing.T) {
	s := Shape{2, 3, 4}

	d, err := s.NormalizeDim(-1)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	_, err = s.NormalizeDim(3)
	assert.Error(t, err)
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		stretched bool
		wantErr   bool
	}{
		{"equal", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"lower rank", Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"both stretch", Shape{1, 4}, Shape{2, 1}, Shape{2, 4}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stretched, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.stretched, stretched)
		})
	}
}

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Int64.Size())
	assert.True(t, Float64.IsFloat())
	assert.False(t, Int32.IsFloat())
	assert.Equal(t, "int32", Int32.String())
	assert.Equal(t, "CPU", CPU.String())
	assert.Equal(t, "WebGPU", WebGPU.String())

	assert.Equal(t, Int32, dataTypeOf[int32]())
	assert.Equal(t, Float32, dataTypeOf[float32]())
	assert.Equal(t, Float64, dataTypeOf[float64]())

	type logit float32
	assert.Panics(t, func() { dataTypeOf[logit]() })
}

func TestRawTensor_CloneIsIndependent(t *testing.T) {
	r, err := NewRaw(Shape{2, 2}, Float32, CPU)
	require.NoError(t, err)
	copy(r.AsFloat32(), []float32{1, 2, 3, 4})

	c := r.Clone()
	c.AsFloat32()[0] = 99

	assert.Equal(t, float32(1), r.AsFloat32()[0])
	assert.Equal(t, 16, r.ByteSize())
}

func TestRawTensor_WithShape(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Int32, CPU)
	require.NoError(t, err)

	v, err := r.WithShape(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, v.Strides())

	_, err = r.WithShape(Shape{4})
	assert.Error(t, err)
}

func TestRawTensor_WrongDTypePanics(t *testing.T) {
	r, err := NewRaw(Shape{2}, Int32, CPU)
	require.NoError(t, err)
	assert.Panics(t, func() { r.AsFloat32() })
}
