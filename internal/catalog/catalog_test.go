package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/store"
)

const testKey = "bb_billboards"

// failingStore fails every read and write.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("storage offline")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("storage offline")
}

func fixedIDs(ids ...string) Option {
	return WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	})
}

func persisted(t *testing.T, blobs store.Store) []model.Billboard {
	var items []model.Billboard
	require.True(t, store.ReadJSON(context.Background(), blobs, testKey, &items))
	return items
}

func TestNew_SeedsAndPersistsOnFirstRun(t *testing.T) {
	blobs := store.NewMemoryStore()
	s := New(context.Background(), blobs, testKey)

	items := s.List()
	require.Len(t, items, 3)
	assert.Equal(t, "bb-1", items[0].ID)
	assert.Equal(t, model.StatusBooked, items[2].Status)
	assert.True(t, items[2].IsBookedBy(DemoCustomerID))
	assert.Equal(t, items, persisted(t, blobs))
}

func TestNew_RestoresPersistedCatalog(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	saved := []model.Billboard{{ID: "bb-9", Title: "Saved", Location: "Here", Status: model.StatusAvailable, OwnerID: "owner:a@b.c"}}
	require.NoError(t, store.WriteJSON(ctx, blobs, testKey, saved))

	s := New(ctx, blobs, testKey)
	assert.Equal(t, saved, s.List())
}

func TestNew_FallsBackToSeed(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T) store.Store
	}{
		{
			name: "empty catalog",
			setup: func(t *testing.T) store.Store {
				s := store.NewMemoryStore()
				require.NoError(t, s.Set(context.Background(), testKey, []byte(`[]`)))
				return s
			},
		},
		{
			name: "corrupt catalog",
			setup: func(t *testing.T) store.Store {
				s := store.NewMemoryStore()
				require.NoError(t, s.Set(context.Background(), testKey, []byte(`{"id":`)))
				return s
			},
		},
		{
			name:  "storage unavailable",
			setup: func(t *testing.T) store.Store { return failingStore{} },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(context.Background(), tc.setup(t), testKey)
			assert.Equal(t, Seed(), s.List())
		})
	}
}

func TestAdd_AppliesDefaultsAndPrepends(t *testing.T) {
	blobs := store.NewMemoryStore()
	s := New(context.Background(), blobs, testKey, fixedIDs("bb-new"))

	b, outcome := s.Add(context.Background(), model.ListingDraft{Title: "X", Location: "Y"}, "owner:o@x.io")
	require.True(t, outcome.Applied)

	assert.Equal(t, "bb-new", b.ID)
	assert.Equal(t, 0.0, b.Lat)
	assert.Equal(t, 0.0, b.Lng)
	assert.Equal(t, 0.0, b.Price)
	assert.Equal(t, model.DefaultSize, b.Size)
	assert.Equal(t, model.StatusAvailable, b.Status)
	assert.Nil(t, b.BookedBy)
	assert.Equal(t, "owner:o@x.io", b.OwnerID)

	items := s.List()
	require.Len(t, items, 4)
	assert.Equal(t, "bb-new", items[0].ID)
	assert.Equal(t, items, persisted(t, blobs))
}

func TestAdd_DefaultIDsAreUnique(t *testing.T) {
	s := New(context.Background(), store.NewMemoryStore(), testKey)
	a, _ := s.Add(context.Background(), model.ListingDraft{Title: "A", Location: "L"}, "owner:o@x.io")
	b, _ := s.Add(context.Background(), model.ListingDraft{Title: "B", Location: "L"}, "owner:o@x.io")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Regexp(t, `^bb-`, a.ID)
}

func TestAdd_RejectsMissingRequiredFields(t *testing.T) {
	testCases := []struct {
		name  string
		draft model.ListingDraft
	}{
		{name: "missing title", draft: model.ListingDraft{Location: "Y"}},
		{name: "blank title", draft: model.ListingDraft{Title: "  ", Location: "Y"}},
		{name: "missing location", draft: model.ListingDraft{Title: "X"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := store.NewMemoryStore()
			s := New(context.Background(), blobs, testKey)
			before := s.List()

			_, outcome := s.Add(context.Background(), tc.draft, "owner:o@x.io")
			assert.False(t, outcome.Applied)
			assert.Equal(t, model.ReasonInvalidInput, outcome.Reason)
			assert.True(t, errors.Is(outcome.Err(), model.ErrInvalidInput))
			assert.Equal(t, before, s.List())
			assert.Equal(t, before, persisted(t, blobs))
		})
	}
}

func TestUpdate(t *testing.T) {
	blobs := store.NewMemoryStore()
	s := New(context.Background(), blobs, testKey)

	outcome := s.Update(context.Background(), "bb-2", func(b *model.Billboard) {
		b.Price = 2500
		b.ID = "hijacked"
		b.OwnerID = "someone-else"
	})
	require.True(t, outcome.Applied)

	b, ok := s.Get("bb-2")
	require.True(t, ok)
	assert.Equal(t, 2500.0, b.Price)
	assert.Equal(t, DemoOwnerID, b.OwnerID)
	assert.Equal(t, s.List(), persisted(t, blobs))

	missing := s.Update(context.Background(), "bb-404", func(b *model.Billboard) { b.Price = 1 })
	assert.Equal(t, model.ReasonNotFound, missing.Reason)
	assert.Len(t, s.List(), 3, "update never creates a record")
}

func TestApply(t *testing.T) {
	blobs := store.NewMemoryStore()
	s := New(context.Background(), blobs, testKey)

	rejected := s.Apply(context.Background(), func(items []model.Billboard) ([]model.Billboard, model.Outcome) {
		items[0].Title = "mutated snapshot"
		return items, model.Rejected(model.ReasonPreconditionFailed, "nope")
	})
	assert.False(t, rejected.Applied)
	assert.Equal(t, Seed(), s.List(), "a rejected transition leaves the catalog alone")

	applied := s.Apply(context.Background(), func(items []model.Billboard) ([]model.Billboard, model.Outcome) {
		items[0].Status = model.StatusBooked
		return items, model.Ok()
	})
	assert.True(t, applied.Applied)
	b, _ := s.Get("bb-1")
	assert.Equal(t, model.StatusBooked, b.Status)
	assert.Equal(t, s.List(), persisted(t, blobs))
}

func TestList_ReturnsIndependentSnapshot(t *testing.T) {
	s := New(context.Background(), store.NewMemoryStore(), testKey)

	snap := s.List()
	snap[0].Title = "changed"
	*snap[2].BookedBy = "intruder"

	fresh := s.List()
	assert.Equal(t, "Downtown LED Board", fresh[0].Title)
	assert.True(t, fresh[2].IsBookedBy(DemoCustomerID))
}

func TestMutations_SurvivePersistenceFailure(t *testing.T) {
	s := New(context.Background(), failingStore{}, testKey)

	_, outcome := s.Add(context.Background(), model.ListingDraft{Title: "X", Location: "Y"}, "owner:o@x.io")
	assert.True(t, outcome.Applied)
	assert.Len(t, s.List(), 4)
}
