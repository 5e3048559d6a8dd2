// Package storage builds the session store named by the configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/tventura/mibot/internal/adapters/storage/firestore"
	"github.com/tventura/mibot/internal/adapters/storage/memory"
	redisstore "github.com/tventura/mibot/internal/adapters/storage/redis"
	"github.com/tventura/mibot/internal/adapters/storage/sqlite"
	"github.com/tventura/mibot/internal/config"
	"github.com/tventura/mibot/internal/domain"
)

// New returns the configured session store. Drivers that hold external
// connections are verified here, so a bad backend config fails at startup
// instead of on the first request.
func New(ctx context.Context, cfg *config.Config) (domain.SessionStore, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return memory.NewStore(), nil
	case config.StorageRedis:
		return redisstore.NewStore(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
	case config.StorageSQLite:
		return sqlite.NewStore(cfg.SQLitePath)
	case config.StorageFirestore:
		return firestore.NewStore(ctx, cfg.GCPProjectID)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
