package nn

import (
	"fmt"

	"github.com/born-ml/seqrnn/internal/tensor"
)

// SigmoidBackend is an interface for backends that support Sigmoid activation.
type SigmoidBackend interface {
	Sigmoid(*tensor.RawTensor) *tensor.RawTensor
}

// TanhBackend is an interface for backends that support Tanh activation.
type TanhBackend interface {
	Tanh(*tensor.RawTensor) *tensor.RawTensor
}

// SigmoidFunc applies σ(x) = 1 / (1 + exp(-x)) element-wise.
//
// Sigmoid squashes values to (0, 1); GRU and LSTM use it for their gates.
func SigmoidFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := x.Backend()
	sb, ok := any(backend).(SigmoidBackend)
	if !ok {
		panic(fmt.Sprintf("Sigmoid: backend %s does not implement Sigmoid", backend.Name()))
	}
	return tensor.New[float32, B](sb.Sigmoid(x.Raw()), backend)
}

// TanhFunc applies the hyperbolic tangent element-wise.
func TanhFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := x.Backend()
	tb, ok := any(backend).(TanhBackend)
	if !ok {
		panic(fmt.Sprintf("Tanh: backend %s does not implement Tanh", backend.Name()))
	}
	return tensor.New[float32, B](tb.Tanh(x.Raw()), backend)
}
