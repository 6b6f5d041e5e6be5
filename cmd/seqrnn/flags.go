package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/seqrnn/internal/config"
	"github.com/born-ml/seqrnn/internal/logger"
	"github.com/born-ml/seqrnn/internal/seqmodel"
)

// modelOptions holds the flags shared by every command that builds a model.
type modelOptions struct {
	configPath string
	inputSize  int
	hiddenSize int
	outputSize int
	variant    string
	layers     int
	seed       int64
	logLevel   string
	logFormat  string
	jsonOutput bool
}

func (o *modelOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to a YAML config file",
			Destination: &o.configPath,
		},
		&cli.IntFlag{Name: "input-size", Usage: "vocabulary size accepted by the embedding", Destination: &o.inputSize},
		&cli.IntFlag{Name: "hidden-size", Usage: "embedding and recurrent state width", Destination: &o.hiddenSize},
		&cli.IntFlag{Name: "output-size", Usage: "number of output logits", Destination: &o.outputSize},
		&cli.StringFlag{Name: "variant", Usage: "recurrent unit (gru, lstm)", Destination: &o.variant},
		&cli.IntFlag{Name: "layers", Usage: "number of stacked recurrent layers", Destination: &o.layers},
		&cli.Int64Flag{Name: "seed", Usage: "seed for parameter initialization", Destination: &o.seed},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Destination: &o.logLevel},
		&cli.StringFlag{Name: "log-format", Usage: "console or json", Destination: &o.logFormat},
		&cli.BoolFlag{Name: "json", Usage: "print results as JSON", Destination: &o.jsonOutput},
	}
}

// resolve loads the config file (or the defaults) and applies every flag the
// user set explicitly on top of it.
func (o *modelOptions) resolve(c *cli.Command) (config.File, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.File{}, err
		}
		cfg = loaded
	}

	if c.IsSet("input-size") {
		cfg.Model.InputSize = o.inputSize
	}
	if c.IsSet("hidden-size") {
		cfg.Model.HiddenSize = o.hiddenSize
	}
	if c.IsSet("output-size") {
		cfg.Model.OutputSize = o.outputSize
	}
	if c.IsSet("variant") {
		v, err := seqmodel.ParseVariant(o.variant)
		if err != nil {
			return config.File{}, err
		}
		cfg.Model.Variant = v
	}
	if c.IsSet("layers") {
		cfg.Model.Layers = o.layers
	}
	if c.IsSet("seed") {
		seed := o.seed
		cfg.Seed = &seed
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = o.logFormat
	}

	cfg.Model = cfg.Model.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.File{}, fmt.Errorf("flags: %w", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if o.configPath != "" {
		o.warnOverrides(c)
	}
	return cfg, nil
}

var overridableFlags = []string{
	"input-size", "hidden-size", "output-size", "variant", "layers", "seed", "log-level", "log-format",
}

// warnOverrides reports every flag that replaced a value from the config file.
func (o *modelOptions) warnOverrides(c *cli.Command) {
	for _, name := range overridableFlags {
		if c.IsSet(name) {
			logger.Log.Warn("flag overrides config file", "flag", name, "config", o.configPath)
		}
	}
}
