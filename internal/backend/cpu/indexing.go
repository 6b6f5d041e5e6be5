package cpu

import (
	"fmt"

	"github.com/born-ml/seqrnn/internal/tensor"
)

// Embedding performs embedding lookup.
// weight: [numEmbeddings, embeddingDim]
// indices: any shape of int32 indices
// output: [...indices.shape, embeddingDim]
//
// Panics if an index falls outside [0, numEmbeddings).
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: indices must be int32, got %s", indices.DType()))
	}

	weightShape := weight.Shape()
	if len(weightShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D, got shape %v", weightShape))
	}
	if !weight.DType().IsFloat() {
		panic(fmt.Sprintf("embedding: unsupported weight dtype %s", weight.DType()))
	}

	numEmbeddings := weightShape[0]
	embeddingDim := weightShape[1]

	outputShape := append(indices.Shape().Clone(), embeddingDim)
	result := cpu.alloc("embedding", outputShape, weight.DType())

	// Rows are copied as raw bytes, so one loop serves every float dtype.
	row := embeddingDim * weight.DType().Size()
	src := weight.Data()
	dst := result.Data()

	for i, id := range indices.AsInt32() {
		idx := int(id)
		if idx < 0 || idx >= numEmbeddings {
			panic(fmt.Sprintf("embedding: index %d out of bounds [0, %d)", idx, numEmbeddings))
		}
		copy(dst[i*row:(i+1)*row], src[idx*row:(idx+1)*row])
	}

	return result
}
