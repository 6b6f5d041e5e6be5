// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Embedding
//   - Recurrent units: GRU, LSTM (multi-layer, PyTorch gate layout)
//   - Activations: SigmoidFunc, TanhFunc
//   - Utilities: Module interface, Parameter, state dicts
//   - Initialization: Xavier, Uniform, Randn, Zeros, Seed
//
// # Basic Usage
//
//	backend := cpu.New()
//	nn.Seed(42)
//
//	embed := nn.NewEmbedding(1000, 64, backend)
//	gru := nn.NewGRU(64, 64, 2, backend)
//	head := nn.NewLinear(64, 1000, backend)
//
//	x := embed.Forward(ids).Reshape(1, batch, 64)
//	h0 := tensor.Zeros[float32](tensor.Shape{2, batch, 64}, backend)
//	out, hn := gru.Forward(x, h0)
//	logits := head.Forward(out.Reshape(batch, 64))
//
// # Recurrent layers
//
// GRU and LSTM consume [seq_len, batch, input_size] and carry state of shape
// [num_layers, batch, hidden_size]. Parameter names follow the
// weight_ih_l{k}, weight_hh_l{k}, bias_ih_l{k}, bias_hh_l{k} convention, so a
// state dict exported elsewhere in that layout loads without renaming.
//
// # Initialization
//
// Linear uses Xavier/Glorot for the weight and zeros for the bias. Embedding
// draws from N(0, 1). Recurrent weights and biases are drawn from
// U(-1/sqrt(hidden_size), 1/sqrt(hidden_size)). Seed makes all of them
// reproducible.
package nn
