package model

// Status is the booking state of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

// DefaultSize is used when a listing is created without a size.
const DefaultSize = "20ft x 10ft"

// SizeSuggestions are the sizes offered by the add-listing form. Size is free
// text, so other values are accepted.
var SizeSuggestions = []string{"20ft x 10ft", "30ft x 14ft", "48ft x 14ft"}

// Billboard is a bookable advertising space. The JSON layout is the persisted
// catalog format.
type Billboard struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Price       float64 `json:"price"` // per week
	Size        string  `json:"size"`
	Status      Status  `json:"status"`
	OwnerID     string  `json:"ownerId"`
	BookedBy    *string `json:"bookedBy"`
}

// IsBookedBy reports whether actorID currently holds the booking.
func (b Billboard) IsBookedBy(actorID string) bool {
	return b.BookedBy != nil && *b.BookedBy == actorID
}

// ListingDraft holds the well-typed fields of a listing that has not been
// added to the catalog yet.
type ListingDraft struct {
	Title       string
	Description string
	Location    string
	Lat         float64
	Lng         float64
	Price       float64
	Size        string
}

// Clone returns a copy of b that shares no memory with it.
func (b Billboard) Clone() Billboard {
	if b.BookedBy != nil {
		holder := *b.BookedBy
		b.BookedBy = &holder
	}
	return b
}

// CloneAll copies a catalog. The result never aliases items.
func CloneAll(items []Billboard) []Billboard {
	out := make([]Billboard, len(items))
	for i, b := range items {
		out[i] = b.Clone()
	}
	return out
}
