package nn

import (
	"fmt"

	"github.com/born-ml/seqrnn/internal/tensor"
)

// Embedding is a lookup table that maps discrete indices to dense vectors.
//
// Architecture:
//   - Weight: [NumEmbed, EmbedDim] learnable parameter
//   - Forward: indices [...] -> embeddings [..., EmbedDim]
//
// Example:
//
//	embed := nn.NewEmbedding[B](10000, 256, backend)
//	ids, _ := tensor.FromSlice([]int32{1, 2, 3}, tensor.Shape{3}, backend)
//	vectors := embed.Forward(ids) // [3, 256]
type Embedding[B tensor.Backend] struct {
	Weight   *Parameter[B] // Embedding weight matrix [NumEmbed, EmbedDim]
	NumEmbed int           // Number of embeddings (vocabulary size)
	EmbedDim int           // Embedding dimension (vector size)
}

// NewEmbedding creates a new Embedding layer with weights drawn from N(0, 1).
//
// Parameters:
//   - numEmbeddings: Size of the embedding dictionary (e.g., vocabulary size)
//   - embeddingDim: Dimension of each embedding vector
//   - backend: Computation backend
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	weight := Randn(tensor.Shape{numEmbeddings, embeddingDim}, backend)
	return NewEmbeddingWithWeight(weight)
}

// NewEmbeddingWithWeight creates an Embedding layer with pre-initialized weights.
//
// Panics if weight is not 2D.
func NewEmbeddingWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Embedding[B] {
	shape := weight.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("embedding weight must be 2D, got shape %v", shape))
	}

	return &Embedding[B]{
		Weight:   NewParameter[B]("weight", weight),
		NumEmbed: shape[0],
		EmbedDim: shape[1],
	}
}

// Forward performs embedding lookup.
//
// Panics if any index is out of bounds [0, NumEmbed).
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.Weight.Tensor().Embedding(indices)
}

// Parameters returns the list of trainable parameters.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}

// StateDict returns {"weight": ...}.
func (e *Embedding[B]) StateDict() map[string]*tensor.RawTensor {
	return stateDictOf(e.Parameters())
}

// LoadStateDict loads the embedding table.
func (e *Embedding[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadParameters(stateDict, e.Parameters())
}
