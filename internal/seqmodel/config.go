package seqmodel

import "fmt"

// DefaultLayers is the number of recurrent layers used when Config.Layers is zero.
const DefaultLayers = 1

// Config holds the hyperparameters fixed at construction.
type Config struct {
	InputSize  int     `yaml:"input_size" json:"input_size"`   // vocabulary size accepted by the embedding
	HiddenSize int     `yaml:"hidden_size" json:"hidden_size"` // embedding width and recurrent state width
	OutputSize int     `yaml:"output_size" json:"output_size"` // projection width, usually the vocabulary size
	Variant    Variant `yaml:"variant" json:"variant"`
	Layers     int     `yaml:"layers" json:"layers"` // stacked recurrent layers, 0 means DefaultLayers
}

// WithDefaults returns a copy of c with zero-valued optional fields filled in.
func (c Config) WithDefaults() Config {
	if c.Layers == 0 {
		c.Layers = DefaultLayers
	}
	return c
}

// Validate checks that every size is positive and the variant is known.
func (c Config) Validate() error {
	if !c.Variant.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownVariant, c.Variant)
	}
	checks := []struct {
		name  string
		value int
	}{
		{"input_size", c.InputSize},
		{"hidden_size", c.HiddenSize},
		{"output_size", c.OutputSize},
		{"layers", c.Layers},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, chk.name, chk.value)
		}
	}
	return nil
}
