package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/seqrnn/internal/tensor"
)

// State dict errors.
var (
	ErrMissingParameter = errors.New("missing parameter in state dict")
	ErrParameterShape   = errors.New("parameter shape mismatch")
	ErrParameterDType   = errors.New("parameter dtype mismatch")
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that a training procedure would update; layers only
// read them during a forward pass.
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias_ih_l0")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// NumElements returns the number of scalar values held by the parameter.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}

// Check reports whether raw can be loaded into the parameter.
func (p *Parameter[B]) Check(raw *tensor.RawTensor) error {
	if raw.DType() != tensor.Float32 {
		return fmt.Errorf("%s: %w: expected float32, got %v", p.name, ErrParameterDType, raw.DType())
	}
	if !raw.Shape().Equal(p.tensor.Shape()) {
		return fmt.Errorf("%s: %w: expected %v, got %v", p.name, ErrParameterShape, p.tensor.Shape(), raw.Shape())
	}
	return nil
}

// Load copies raw into the parameter after checking shape and dtype.
func (p *Parameter[B]) Load(raw *tensor.RawTensor) error {
	if err := p.Check(raw); err != nil {
		return err
	}
	copy(p.tensor.Data(), raw.AsFloat32())
	return nil
}

// ParameterGroup is a set of parameters whose state dict keys share a prefix.
type ParameterGroup[B tensor.Backend] struct {
	Prefix string
	Params []*Parameter[B]
}

// LoadParameters loads every parameter of every group from stateDict under
// Prefix+Name. All entries are checked before the first copy, so on error no
// parameter has been modified.
func LoadParameters[B tensor.Backend](stateDict map[string]*tensor.RawTensor, groups ...ParameterGroup[B]) error {
	type pending struct {
		param *Parameter[B]
		raw   *tensor.RawTensor
	}
	var loads []pending
	for _, g := range groups {
		for _, p := range g.Params {
			key := g.Prefix + p.Name()
			raw, ok := stateDict[key]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingParameter, key)
			}
			if err := p.Check(raw); err != nil {
				return fmt.Errorf("%s%w", g.Prefix, err)
			}
			loads = append(loads, pending{param: p, raw: raw})
		}
	}

	for _, l := range loads {
		copy(l.param.tensor.Data(), l.raw.AsFloat32())
	}
	return nil
}

// loadParameters loads one unprefixed group.
func loadParameters[B tensor.Backend](stateDict map[string]*tensor.RawTensor, params []*Parameter[B]) error {
	return LoadParameters(stateDict, ParameterGroup[B]{Params: params})
}

// stateDictOf exports params keyed by their names.
func stateDictOf[B tensor.Backend](params []*Parameter[B]) map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor, len(params))
	for _, p := range params {
		stateDict[p.Name()] = p.Tensor().Raw()
	}
	return stateDict
}
