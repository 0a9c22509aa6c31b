package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/store"
)

// SubscriptionStore keeps every push subscription in a single blob. Writes
// rewrite the whole blob, so they are refused when the current list cannot
// be read.
type SubscriptionStore struct {
	mu    sync.Mutex
	blobs store.Store
	key   string
}

// NewSubscriptionStore creates a subscription store under key.
func NewSubscriptionStore(blobs store.Store, key string) *SubscriptionStore {
	return &SubscriptionStore{blobs: blobs, key: key}
}

// Put creates or replaces the subscription with the same endpoint.
func (s *SubscriptionStore) Put(ctx context.Context, sub model.PushSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	replaced := false
	for i := range all {
		if all[i].Endpoint == sub.Endpoint {
			all[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, sub)
	}
	return store.WriteJSON(ctx, s.blobs, s.key, all)
}

// Delete removes the subscription with the given endpoint, if any.
func (s *SubscriptionStore) Delete(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.PushSubscription, 0, len(all))
	for _, sub := range all {
		if sub.Endpoint != endpoint {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return store.WriteJSON(ctx, s.blobs, s.key, kept)
}

// Get returns the subscription registered for endpoint.
func (s *SubscriptionStore) Get(ctx context.Context, endpoint string) (model.PushSubscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.loadOrEmpty(ctx) {
		if sub.Endpoint == endpoint {
			return sub, true
		}
	}
	return model.PushSubscription{}, false
}

// ForActor returns the subscriptions registered by actorID.
func (s *SubscriptionStore) ForActor(ctx context.Context, actorID string) []model.PushSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.PushSubscription
	for _, sub := range s.loadOrEmpty(ctx) {
		if sub.ActorID == actorID {
			out = append(out, sub)
		}
	}
	return out
}

func (s *SubscriptionStore) load(ctx context.Context) ([]model.PushSubscription, error) {
	var all []model.PushSubscription
	if _, err := store.LoadJSON(ctx, s.blobs, s.key, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// loadOrEmpty is load for readers, which treat an unreadable list as empty.
func (s *SubscriptionStore) loadOrEmpty(ctx context.Context) []model.PushSubscription {
	all, err := s.load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("push subscriptions unreadable")
		return nil
	}
	return all
}
