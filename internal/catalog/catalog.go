package catalog

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/store"
)

// Transition computes the next catalog from a snapshot of the current one.
// The booking package provides the transitions used by the application.
type Transition func(items []model.Billboard) ([]model.Billboard, model.Outcome)

// Store owns the ordered catalog and mirrors every successful mutation to the
// blob store as a full snapshot. It is not safe for concurrent use; callers
// serialise access (see app.State).
type Store struct {
	blobs store.Store
	key   string
	newID func() string
	items []model.Billboard
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces the default "bb-<uuid>" id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New loads the persisted catalog from key. When nothing usable is stored
// (missing, undecodable, or empty) the demo listings are seeded and written
// back.
func New(ctx context.Context, blobs store.Store, key string, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		key:   key,
		newID: func() string { return "bb-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}

	var existing []model.Billboard
	if store.ReadJSON(ctx, blobs, key, &existing) && len(existing) > 0 {
		s.items = existing
		log.Info().Int("listings", len(existing)).Msg("catalog restored")
		return s
	}

	s.items = Seed()
	log.Info().Int("listings", len(s.items)).Msg("catalog seeded")
	s.persist(ctx)
	return s
}

// List returns a snapshot of the catalog, most recently added first.
func (s *Store) List() []model.Billboard {
	return model.CloneAll(s.items)
}

// Get returns a snapshot of the listing with the given id.
func (s *Store) Get(id string) (model.Billboard, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return model.Billboard{}, false
}

// Add creates an available listing owned by ownerID and prepends it. Title
// and location are required.
func (s *Store) Add(ctx context.Context, draft model.ListingDraft, ownerID string) (model.Billboard, model.Outcome) {
	err := validation.Errors{
		"title":    validation.Validate(strings.TrimSpace(draft.Title), validation.Required.Error("title is required")),
		"location": validation.Validate(strings.TrimSpace(draft.Location), validation.Required.Error("location is required")),
	}.Filter()
	if err != nil {
		return model.Billboard{}, model.Rejected(model.ReasonInvalidInput, err.Error())
	}

	size := draft.Size
	if size == "" {
		size = model.DefaultSize
	}
	price := draft.Price
	if price < 0 {
		price = 0
	}

	b := model.Billboard{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
		Lat:         draft.Lat,
		Lng:         draft.Lng,
		Price:       price,
		Size:        size,
		Status:      model.StatusAvailable,
		OwnerID:     ownerID,
	}

	s.items = append([]model.Billboard{b}, s.items...)
	s.persist(ctx)
	return b.Clone(), model.Ok()
}

// Update applies mutate to a copy of the listing with the given id and
// stores the result. The id and owner are immutable and are restored if the
// mutator changes them.
func (s *Store) Update(ctx context.Context, id string, mutate func(b *model.Billboard)) model.Outcome {
	i := s.indexOf(id)
	if i < 0 {
		return model.Rejected(model.ReasonNotFound, "no listing with id "+id)
	}

	next := s.items[i].Clone()
	mutate(&next)
	next.ID = s.items[i].ID
	next.OwnerID = s.items[i].OwnerID

	s.items[i] = next
	s.persist(ctx)
	return model.Ok()
}

// Apply runs a whole-catalog transition against a snapshot and, when it is
// applied, replaces the catalog with its result.
func (s *Store) Apply(ctx context.Context, transition Transition) model.Outcome {
	next, outcome := transition(s.List())
	if !outcome.Applied {
		return outcome
	}
	s.items = model.CloneAll(next)
	s.persist(ctx)
	return outcome
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full catalog. Failures are logged and not retried.
func (s *Store) persist(ctx context.Context) {
	if err := store.WriteJSON(ctx, s.blobs, s.key, s.items); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("catalog write-through failed")
	}
}
