package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/edupath/edupath-backend/internal/config"
)

// New builds the Cache backend selected by configuration.
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(cfg.TTL, time.Minute), nil
	case "redis":
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}
