package main

import (
	"time"

	"github.com/born-ml/seqrnn/internal/backend/cpu"
	"github.com/born-ml/seqrnn/internal/config"
	"github.com/born-ml/seqrnn/internal/logger"
	"github.com/born-ml/seqrnn/internal/nn"
	"github.com/born-ml/seqrnn/internal/seqmodel"
)

func buildModel(cfg config.File) (*seqmodel.Model[*cpu.CPUBackend], error) {
	if cfg.Seed != nil {
		nn.Seed(*cfg.Seed)
	}

	start := time.Now()
	model, err := seqmodel.New(cfg.Model, cpu.New())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("model built",
		"variant", cfg.Model.Variant.String(),
		"input_size", cfg.Model.InputSize,
		"hidden_size", cfg.Model.HiddenSize,
		"output_size", cfg.Model.OutputSize,
		"layers", cfg.Model.Layers,
		"parameters", model.NumParameters(),
		"elapsed", time.Since(start),
	)
	return model, nil
}
