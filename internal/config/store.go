package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// StoreConfig holds settings for the persistent game store.
type StoreConfig struct {
	// Path is the database directory
	Path string

	// InMemory keeps everything in memory; Path is ignored
	InMemory bool

	// SyncWrites fsyncs every write
	SyncWrites bool
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{Path: "chess-data"}
}

// Validate checks that the store configuration is valid.
func (s *StoreConfig) Validate() error {
	if !s.InMemory && s.Path == "" {
		return fmt.Errorf("store path is empty: %w", errors.ErrInvalidConfig)
	}
	return nil
}
