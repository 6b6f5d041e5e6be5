// Package config loads the YAML file that describes a model and how the CLI runs it.
//
//	model:
//	  input_size: 50
//	  hidden_size: 8
//	  output_size: 50
//	  variant: lstm
//	  layers: 2
//	seed: 42
//	log_level: info
//	log_format: console
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/seqrnn/internal/seqmodel"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// File is the on-disk configuration.
//
// Seed is a pointer so an absent key can be told apart from seed 0.
type File struct {
	Model     seqmodel.Config `yaml:"model"`
	Seed      *int64          `yaml:"seed,omitempty"`
	LogLevel  string          `yaml:"log_level,omitempty"`
	LogFormat string          `yaml:"log_format,omitempty"`
}

// Default returns the configuration used when no file is given: a single-layer
// GRU over a 50 token vocabulary with 8 hidden units.
func Default() File {
	return File{
		Model: seqmodel.Config{
			InputSize:  50,
			HiddenSize: 8,
			OutputSize: 50,
			Variant:    seqmodel.GRU,
			Layers:     seqmodel.DefaultLayers,
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads and validates the file at path. Keys missing from the file keep
// their Default values; unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML data on top of Default.
func Parse(data []byte) (File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Model = cfg.Model.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate checks the model section and the logging options.
func (f File) Validate() error {
	if err := f.Model.Validate(); err != nil {
		return fmt.Errorf("%w: model: %w", ErrInvalid, err)
	}
	switch strings.ToLower(f.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q (want console or json)", ErrInvalid, f.LogFormat)
	}
	switch strings.ToLower(f.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, f.LogLevel)
	}
	return nil
}

// Marshal renders f as YAML.
func (f File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
