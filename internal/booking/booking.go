// Package booking holds the listing state transitions. Every function is
// pure: it never mutates its input and returns the input slice itself when
// the transition is rejected.
//
// None of the transitions detect conflicts. Book reassigns a listing that is
// already booked by someone else, and the last caller wins.
package booking

import (
	"billboard-hub-backend/internal/model"
)

// Book marks the listing as booked by a customer.
func Book(items []model.Billboard, actor *model.Actor, id string) ([]model.Billboard, model.Outcome) {
	if actor == nil {
		return items, model.Rejected(model.ReasonPreconditionFailed, "no actor is signed in")
	}
	if actor.Role != model.RoleCustomer {
		return items, model.Rejected(model.ReasonPreconditionFailed, "only customers can book")
	}
	i := indexOf(items, id)
	if i < 0 {
		return items, notFound(id)
	}

	holder := actor.ID
	return replace(items, i, func(b *model.Billboard) {
		b.Status = model.StatusBooked
		b.BookedBy = &holder
	}), model.Ok()
}

// Release clears a booking held by the actor.
func Release(items []model.Billboard, actor *model.Actor, id string) ([]model.Billboard, model.Outcome) {
	if actor == nil {
		return items, model.Rejected(model.ReasonPreconditionFailed, "no actor is signed in")
	}
	i := indexOf(items, id)
	if i < 0 {
		return items, notFound(id)
	}
	if !items[i].IsBookedBy(actor.ID) {
		return items, model.Rejected(model.ReasonPreconditionFailed, "booking is not held by the actor")
	}

	return replace(items, i, func(b *model.Billboard) {
		b.Status = model.StatusAvailable
		b.BookedBy = nil
	}), model.Ok()
}

// SetAvailability lets the owner of a listing flip its status. Making it
// available clears the holder. Marking it booked keeps whatever holder the
// listing had, which may be none.
func SetAvailability(items []model.Billboard, actor *model.Actor, id string, toAvailable bool) ([]model.Billboard, model.Outcome) {
	if actor == nil {
		return items, model.Rejected(model.ReasonPreconditionFailed, "no actor is signed in")
	}
	if actor.Role != model.RoleOwner {
		return items, model.Rejected(model.ReasonPreconditionFailed, "only owners can change availability")
	}
	i := indexOf(items, id)
	if i < 0 {
		return items, notFound(id)
	}
	if items[i].OwnerID != actor.ID {
		return items, model.Rejected(model.ReasonPreconditionFailed, "listing is owned by someone else")
	}

	return replace(items, i, func(b *model.Billboard) {
		if toAvailable {
			b.Status = model.StatusAvailable
			b.BookedBy = nil
			return
		}
		b.Status = model.StatusBooked
	}), model.Ok()
}

func indexOf(items []model.Billboard, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) model.Outcome {
	return model.Rejected(model.ReasonNotFound, "no listing with id "+id)
}

// replace copies items and applies mutate to the copy at index i.
func replace(items []model.Billboard, i int, mutate func(b *model.Billboard)) []model.Billboard {
	next := model.CloneAll(items)
	mutate(&next[i])
	return next
}
