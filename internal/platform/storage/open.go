package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"paystructure/internal/platform/config"
	"paystructure/internal/platform/crypto"
	"paystructure/internal/platform/db"
)

// Open builds the backend selected by cfg.StorageDriver, wrapping it in
// Sealed when a data encryption key is configured.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	backend, err := openDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("init encryption: %w", err)
	}
	if svc.Configured() {
		slog.Info("salary state encryption at rest enabled", "driver", cfg.StorageDriver)
		return Seal(backend, svc), nil
	}
	return backend, nil
}

func openDriver(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverFile:
		return NewFile(cfg.StorageFileDir)
	case config.DriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}
		if err := db.Migrate(ctx, pool, db.Migrations()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		return NewPostgres(pool), nil
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis connect failed: %w", err)
		}
		return NewRedis(client), nil
	case config.DriverGCS:
		return NewGCS(ctx, cfg.GCSBucket, "", cfg.GCSCredentialsJSON)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
