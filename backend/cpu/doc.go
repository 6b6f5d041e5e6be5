// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 arithmetic
//   - NumPy-compatible broadcasting
//   - Row-parallel matrix multiplication
//
// # Basic Usage
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Kernels never modify their
// inputs and keep no mutable state between calls.
package cpu
