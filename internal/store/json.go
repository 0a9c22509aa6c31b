package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"billboard-hub-backend/internal/model"
)

// Well-known blob keys.
const (
	KeyUser              = "bb_user"
	KeyBillboards        = "bb_billboards"
	KeyPushSubscriptions = "bb_push_subscriptions"
)

// ReadJSON decodes the blob stored under key into dest. It returns false when
// the key is missing, the backend fails, or the value cannot be decoded; the
// caller should then fall back to its default. dest should be a fresh value
// since a failed decode may leave it partially written.
func ReadJSON(ctx context.Context, s Store, key string, dest any) bool {
	ok, err := LoadJSON(ctx, s, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("blob read failed, using default")
		return false
	}
	return ok
}

// LoadJSON decodes the blob stored under key into dest without a fallback.
// ok is false with a nil error only when the key has never been written.
// Backend and decode failures wrap model.ErrPersistenceUnavailable.
func LoadJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: %w", model.ErrPersistenceUnavailable, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%w: failed to decode %q: %w", model.ErrPersistenceUnavailable, key, err)
	}
	return true, nil
}

// WriteJSON encodes v and overwrites the blob stored under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersistenceUnavailable, err)
	}
	return nil
}
