package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/seqrnn/internal/parallel"
	"github.com/born-ml/seqrnn/internal/tensor"
)

// Sigmoid applies σ(x) = 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sigmoid", x, sigmoid)
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("tanh", x, math.Tanh)
}

// sigmoid is split by sign so exp never overflows.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(name, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		mapFloat(result.AsFloat32(), x.AsFloat32(), f, cpu.par)
	case tensor.Float64:
		mapFloat(result.AsFloat64(), x.AsFloat64(), f, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

func mapFloat[T float32 | float64](dst, src []T, f func(float64) float64, cfg parallel.Config) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = T(f(float64(src[i])))
		}
	}, cfg)
}
