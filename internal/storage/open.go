package storage

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/shoe_shop/internal/config"
	"github.com/Skotchmaster/shoe_shop/internal/db"
)

// Open builds the backend selected by cfg.StorageDriver. The returned close
// function releases the underlying connection.
func Open(ctx context.Context, cfg config.Config) (Storage, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite, config.DriverPostgres:
		gdb, err := db.Open(ctx, cfg.StorageDriver, cfg.StorageDSN)
		if err != nil {
			return nil, nil, err
		}
		s, err := NewGormStore(gdb)
		if err != nil {
			_ = db.Close(gdb)
			return nil, nil, err
		}
		return s, func() error { return db.Close(gdb) }, nil
	case config.DriverRedis:
		s, err := NewRedisStore(ctx, cfg.RedisURL, cfg.RedisNamespace)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q: %w", cfg.StorageDriver, config.ErrInvalidConfig)
	}
}
