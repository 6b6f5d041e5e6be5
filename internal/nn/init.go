package nn

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/born-ml/seqrnn/internal/tensor"
)

var (
	rngMu sync.Mutex
	//nolint:gosec // math/rand is appropriate for ML weight initialization
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Seed resets the random source used by every initializer in this package.
// Layers constructed after Seed(n) with the same hyperparameters get identical weights.
func Seed(seed int64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	//nolint:gosec // math/rand is appropriate for ML weight initialization
	rng = rand.New(rand.NewSource(seed))
}

// fill sets every element of a new float32 tensor from sample, holding the rng lock.
func fill[B tensor.Backend](shape tensor.Shape, backend B, sample func(r *rand.Rand) float64) *tensor.Tensor[float32, B] {
	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()

	rngMu.Lock()
	defer rngMu.Unlock()
	for i := range data {
		data[i] = float32(sample(rng))
	}
	return t
}

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return Uniform(bound, shape, backend)
}

// Uniform draws values from U(-bound, bound).
//
// Recurrent layers use bound = 1/sqrt(hidden_size).
func Uniform[B tensor.Backend](bound float64, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return fill(shape, backend, func(r *rand.Rand) float64 {
		return (r.Float64()*2.0 - 1.0) * bound
	})
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return fill(shape, backend, func(r *rand.Rand) float64 {
		return r.NormFloat64()
	})
}

// Zeros creates a tensor filled with zeros.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}
