package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billboard-hub-backend/internal/catalog"
	"billboard-hub-backend/internal/model"
)

func ids(items []model.Billboard) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	seed := catalog.Seed()

	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "matches location", query: "airport", expected: []string{"bb-2"}},
		{name: "ignores case and surrounding space", query: "  DOWNTOWN ", expected: []string{"bb-1"}},
		{name: "matches description", query: "shopping", expected: []string{"bb-3"}},
		{name: "matches several in order", query: "board", expected: []string{"bb-1", "bb-2", "bb-3"}},
		{name: "no match", query: "harbour", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(Filter(seed, tc.query)))
		})
	}
}

func TestFilter_BlankQueryIsIdentity(t *testing.T) {
	seed := catalog.Seed()
	for _, q := range []string{"", "   ", "\t"} {
		assert.Equal(t, seed, Filter(seed, q))
	}
}

func TestFilter_IsIdempotent(t *testing.T) {
	seed := catalog.Seed()
	for _, q := range []string{"board", "a", "airport", "zzz"} {
		once := Filter(seed, q)
		assert.Equal(t, once, Filter(once, q))
	}
}

func TestFilter_MissingDescriptionDoesNotMatch(t *testing.T) {
	items := []model.Billboard{{ID: "x", Title: "Pier Board", Location: "Harbour"}}
	assert.Equal(t, []string{"x"}, ids(Filter(items, "harbour")))
	assert.Empty(t, Filter(items, "led"))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	seed := catalog.Seed()
	_ = Filter(seed, "board")
	assert.Equal(t, catalog.Seed(), seed)
}

func TestViews(t *testing.T) {
	items := append([]model.Billboard{{ID: "bb-x", Status: model.StatusAvailable, OwnerID: "owner:o@x.io"}}, catalog.Seed()...)

	assert.Equal(t, []string{"bb-x", "bb-1", "bb-2"}, ids(Available(items)))
	assert.Equal(t, []string{"bb-x"}, ids(OwnedBy(items, "owner:o@x.io")))
	assert.Equal(t, []string{"bb-1", "bb-2", "bb-3"}, ids(OwnedBy(items, catalog.DemoOwnerID)))
	assert.Equal(t, []string{"bb-3"}, ids(BookedBy(items, catalog.DemoCustomerID)))
	assert.Empty(t, BookedBy(items, "customer:nobody@x.io"))
}
