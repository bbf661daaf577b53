package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// ReplayConfig holds settings for concurrent replay of stored games.
type ReplayConfig struct {
	// Workers is the number of replay goroutines; 0 means one per CPU
	Workers int

	// BufferSize is the work and result channel capacity; 0 means twice Workers
	BufferSize int
}

// NewReplayConfig creates a ReplayConfig with default values.
// Both fields default to zero so the pool picks its own sizes.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 0 || r.BufferSize < 0 {
		return fmt.Errorf("workers (%d) and buffer size (%d) must not be negative: %w",
			r.Workers, r.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
