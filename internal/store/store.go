package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"billboard-hub-backend/internal/model"
)

// Store is a named blob store with get/set semantics. Values are opaque
// bytes; ReadJSON and WriteJSON layer the JSON encoding on top.
type Store interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// memoryStore keeps blobs in process memory. Nothing survives a restart.
type memoryStore struct {
	c *cache.Cache
}

// NewMemoryStore creates a Store backed by an in-process cache with no expiry.
func NewMemoryStore() Store {
	return &memoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := s.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return cloneBytes(v.([]byte)), true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.c.Set(key, cloneBytes(value), cache.NoExpiration)
	return nil
}

// gormStore implements Store on top of the blobs table.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed store. The blobs table must already be
// migrated (see db.Init).
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob model.Blob
	err := s.db.WithContext(ctx).Where(&model.Blob{Key: key}).Take(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return blob.Value, true, nil
}

func (s *gormStore) Set(ctx context.Context, key string, value []byte) error {
	blob := model.Blob{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to upsert blob %q: %w", key, err)
	}
	return nil
}

// redisStore keeps each blob under prefix+key.
type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. Keys never expire.
func NewRedisStore(rdb *redis.Client, prefix string) Store {
	return &redisStore{rdb: rdb, prefix: prefix}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	bs, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return bs, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
