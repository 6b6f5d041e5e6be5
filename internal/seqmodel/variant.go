package seqmodel

import (
	"fmt"
	"strings"
)

// Variant selects the recurrent unit of a Model.
type Variant int

// Supported recurrent units. The zero value is not a valid variant.
const (
	GRU Variant = iota + 1
	LSTM
)

// ParseVariant parses "gru" or "lstm", ignoring case and surrounding space.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gru":
		return GRU, nil
	case "lstm":
		return LSTM, nil
	default:
		return 0, fmt.Errorf("%w: %q (want \"gru\" or \"lstm\")", ErrUnknownVariant, s)
	}
}

// Valid reports whether v is GRU or LSTM.
func (v Variant) Valid() bool {
	return v == GRU || v == LSTM
}

// String returns the lower-case variant name.
func (v Variant) String() string {
	switch v {
	case GRU:
		return "gru"
	case LSTM:
		return "lstm"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so YAML and JSON
// configs reject unknown variants while decoding.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
