package search

import (
	"strings"

	"billboard-hub-backend/internal/model"
)

// Filter keeps the listings whose title, description or location contains
// query, ignoring case. A blank query returns items unchanged. Order is
// preserved and items is never modified.
func Filter(items []model.Billboard, query string) []model.Billboard {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	out := make([]model.Billboard, 0, len(items))
	for _, b := range items {
		if matches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

// An empty field never contains a non-empty query, so listings without a
// description simply don't match on it.
func matches(b model.Billboard, q string) bool {
	for _, field := range []string{b.Title, b.Description, b.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Available keeps the listings that can be booked.
func Available(items []model.Billboard) []model.Billboard {
	return keep(items, func(b model.Billboard) bool { return b.Status == model.StatusAvailable })
}

// OwnedBy keeps the listings created by actorID.
func OwnedBy(items []model.Billboard, actorID string) []model.Billboard {
	return keep(items, func(b model.Billboard) bool { return b.OwnerID == actorID })
}

// BookedBy keeps the listings whose booking is held by actorID.
func BookedBy(items []model.Billboard, actorID string) []model.Billboard {
	return keep(items, func(b model.Billboard) bool { return b.IsBookedBy(actorID) })
}

func keep(items []model.Billboard, pred func(model.Billboard) bool) []model.Billboard {
	out := make([]model.Billboard, 0, len(items))
	for _, b := range items {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}
