package store

import (
	"fmt"

	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/logger"
)

// NewKV constructs the local key/value store selected by cfg.Backend.
func NewKV(cfg config.ClientLocal, log *logger.Logger) (KV, error) {
	switch cfg.Backend {
	case "", "file":
		kv, err := NewFileKV(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("create file local store: %w", err)
		}
		return kv, nil
	case "sqlite":
		kv, err := NewSQLiteKV(cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("create sqlite local store: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown local store backend %q", cfg.Backend)
	}
}
