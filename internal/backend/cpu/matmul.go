package cpu

import (
	"fmt"

	"github.com/born-ml/seqrnn/internal/parallel"
	"github.com/born-ml/seqrnn/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N).
// Rows of the result are computed in parallel for large M.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := cpu.alloc("matmul", tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		matmul(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, cpu.par)
	case tensor.Float64:
		matmul(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n, cpu.par)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmul computes C = A @ B with an i-k-j loop order so the inner loop
// walks both B and C contiguously. c must be zeroed.
func matmul[T float32 | float64](c, a, b []T, m, k, n int, cfg parallel.Config) {
	// Parallelize over rows; each row is roughly k*n multiply-adds.
	rowCfg := cfg
	rowCfg.MinChunkSize = max(1, cfg.MinChunkSize/max(1, k*n/64))

	parallel.ForRange(m, func(start, end int) {
		for i := start; i < end; i++ {
			cRow := c[i*n : (i+1)*n]
			for kk := 0; kk < k; kk++ {
				aik := a[i*k+kk]
				bRow := b[kk*n : (kk+1)*n]
				for j := range cRow {
					cRow[j] += aik * bRow[j]
				}
			}
		}
	}, rowCfg)
}
