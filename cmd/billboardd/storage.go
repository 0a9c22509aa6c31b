package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"billboard-hub-backend/config"
	"billboard-hub-backend/internal/db"
	"billboard-hub-backend/internal/store"
)

// openStore opens the blob store selected by cfg.Driver. The returned close
// function releases the underlying connection.
func openStore(ctx context.Context, cfg *config.StorageConfig) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory storage; nothing survives a restart")
		return store.NewMemoryStore(), noop, nil

	case config.DriverSQLite, config.DriverPostgres:
		gormDB, err := db.Init(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		return store.NewGormStore(gormDB), sqlDB.Close, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Reads and writes degrade to seed data and logged warnings.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis is unreachable")
		}
		return store.NewRedisStore(rdb, cfg.Redis.Prefix), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
