// Package app ties the catalog, session and booking rules together into the
// intents the HTTP layer exposes. Every intent holds one lock so actions are
// applied one at a time, in arrival order.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"billboard-hub-backend/config"
	"billboard-hub-backend/internal/booking"
	"billboard-hub-backend/internal/catalog"
	"billboard-hub-backend/internal/mapview"
	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/notification"
	"billboard-hub-backend/internal/parse"
	"billboard-hub-backend/internal/search"
	"billboard-hub-backend/internal/session"
)

// View selects which slice of the catalog Browse returns.
type View string

const (
	ViewAll       View = "all"
	ViewAvailable View = "available"
	// ViewMine lists the signed-in owner's listings.
	ViewMine View = "mine"
	// ViewBookings lists the signed-in customer's bookings.
	ViewBookings View = "bookings"
)

// ParseView maps a query parameter to a View. Empty means ViewAll.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewAvailable, ViewMine, ViewBookings:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unknown view %q", model.ErrInvalidInput, s)
	}
}

// Notifier receives booking events after they have been applied.
type Notifier interface {
	Notify(ev notification.Event)
}

// State is the application state shared by all handlers.
type State struct {
	mu       sync.Mutex
	catalog  *catalog.Store
	session  *session.Manager
	mapCfg   config.MapConfig
	notifier Notifier
}

// New creates the application state. notifier may be nil.
func New(c *catalog.Store, s *session.Manager, mapCfg config.MapConfig, notifier Notifier) *State {
	return &State{
		catalog:  c,
		session:  s,
		mapCfg:   mapCfg,
		notifier: notifier,
	}
}

// Actor returns the signed-in actor, or nil.
func (s *State) Actor() *model.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Current()
}

// Login replaces the current actor.
func (s *State) Login(ctx context.Context, role model.Role, name, email string) (model.Actor, model.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, outcome := s.session.Login(ctx, role, name, email)
	if outcome.Applied {
		log.Info().Str("actor", actor.ID).Msg("signed in")
	}
	return actor, outcome
}

// Logout clears the current actor.
func (s *State) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Logout(ctx)
}

// Browse returns the listings in view that match query. The personal views
// are empty when nobody is signed in.
func (s *State) Browse(query string, view View) []model.Billboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := search.Filter(s.catalog.List(), query)
	actor := s.session.Current()

	switch view {
	case ViewAvailable:
		return search.Available(items)
	case ViewMine:
		if actor == nil || actor.Role != model.RoleOwner {
			return []model.Billboard{}
		}
		return search.OwnedBy(items, actor.ID)
	case ViewBookings:
		if actor == nil || actor.Role != model.RoleCustomer {
			return []model.Billboard{}
		}
		return search.BookedBy(items, actor.ID)
	default:
		return items
	}
}

// Listing returns one listing by id.
func (s *State) Listing(id string) (model.Billboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

// AddListing parses form and adds it to the catalog on behalf of the
// signed-in owner.
func (s *State) AddListing(ctx context.Context, form parse.ListingForm) (model.Billboard, model.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.session.Current()
	if actor == nil || actor.Role != model.RoleOwner {
		return model.Billboard{}, model.Rejected(model.ReasonPreconditionFailed, "only owners can add listings")
	}

	b, outcome := s.catalog.Add(ctx, parse.Listing(form), actor.ID)
	if outcome.Applied {
		log.Info().Str("billboard", b.ID).Str("owner", actor.ID).Msg("listing added")
	}
	return b, outcome
}

// Book books listing id for the signed-in customer.
func (s *State) Book(ctx context.Context, id string) model.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.session.Current()
	outcome := s.catalog.Apply(ctx, func(items []model.Billboard) ([]model.Billboard, model.Outcome) {
		return booking.Book(items, actor, id)
	})
	if outcome.Applied {
		b, _ := s.catalog.Get(id)
		log.Info().Str("billboard", id).Str("actor", actor.ID).Msg("listing booked")
		s.notify(actor, notification.Event{Kind: notification.KindBooked, BillboardID: id, Title: b.Title, RecipientID: b.OwnerID})
	}
	return outcome
}

// Release cancels the signed-in customer's booking of listing id.
func (s *State) Release(ctx context.Context, id string) model.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.session.Current()
	outcome := s.catalog.Apply(ctx, func(items []model.Billboard) ([]model.Billboard, model.Outcome) {
		return booking.Release(items, actor, id)
	})
	if outcome.Applied {
		b, _ := s.catalog.Get(id)
		log.Info().Str("billboard", id).Str("actor", actor.ID).Msg("booking released")
		s.notify(actor, notification.Event{Kind: notification.KindReleased, BillboardID: id, Title: b.Title, RecipientID: b.OwnerID})
	}
	return outcome
}

// SetAvailability lets the owning owner flip listing id between available
// and booked.
func (s *State) SetAvailability(ctx context.Context, id string, available bool) model.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.session.Current()
	before, _ := s.catalog.Get(id)
	outcome := s.catalog.Apply(ctx, func(items []model.Billboard) ([]model.Billboard, model.Outcome) {
		return booking.SetAvailability(items, actor, id, available)
	})
	if !outcome.Applied {
		return outcome
	}

	log.Info().Str("billboard", id).Bool("available", available).Str("actor", actor.ID).Msg("availability changed")
	if available && before.BookedBy != nil {
		s.notify(actor, notification.Event{Kind: notification.KindFreed, BillboardID: id, Title: before.Title, RecipientID: *before.BookedBy})
	}
	return outcome
}

// MapPreview returns the map link for listing id among the listings that
// match query, falling back to the first match when id is empty or not among
// them. ok is false when nothing matches.
func (s *State) MapPreview(id, query string) (mapview.Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := mapview.Select(search.Filter(s.catalog.List(), query), id)
	if !ok {
		return mapview.Preview{}, false
	}
	return mapview.For(s.mapCfg.BaseURL, b, s.mapCfg.Zoom), true
}

// ListingPreview returns the map link for listing id only.
func (s *State) ListingPreview(id string) (mapview.Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.catalog.Get(id)
	if !ok {
		return mapview.Preview{}, false
	}
	return mapview.For(s.mapCfg.BaseURL, b, s.mapCfg.Zoom), true
}

func (s *State) notify(actor *model.Actor, ev notification.Event) {
	if s.notifier == nil || ev.RecipientID == "" || ev.RecipientID == actor.ID {
		return
	}
	s.notifier.Notify(ev)
}
