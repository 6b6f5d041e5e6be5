// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API of seqrnn.
//
// The package defines core types for type-safe tensor operations:
//   - Tensor[T, B]: generic tensor over a data type and a compute backend
//   - RawTensor: untyped storage with shape, dtype and device
//   - Backend: interface implemented by compute backends
//   - Shape, DataType, Device: core type definitions
//
// Tensor operations never modify their operands; every result is a new tensor.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
//	w := z.MatMul(y.T()) // [2, 2]
package tensor
