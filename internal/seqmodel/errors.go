package seqmodel

import "errors"

// Configuration errors, reported by New and by Config.Validate.
var (
	ErrUnknownVariant = errors.New("unknown recurrent variant")
	ErrInvalidConfig  = errors.New("invalid model config")
)

// Call errors, reported by InitHidden, Forward and ForwardOne.
var (
	ErrBatchSize      = errors.New("batch size must be positive")
	ErrDeviceMismatch = errors.New("device mismatch")
	ErrInputShape     = errors.New("input must be a 1-D batch of token ids")
	ErrTokenRange     = errors.New("token id out of range")
	ErrHiddenKind     = errors.New("hidden state does not match model variant")
	ErrHiddenShape    = errors.New("hidden state shape mismatch")
)
