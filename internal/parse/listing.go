package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"billboard-hub-backend/internal/model"
)

// EmptyDescription stands in for a description the owner left blank.
const EmptyDescription = "—"

// leadingNumberRe matches the numeric prefix of a form value, so "12.5 USD"
// reads as 12.5.
var leadingNumberRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// Field is a raw form value. It decodes from a JSON string, number, or null,
// so clients may send numeric fields either way.
type Field string

// UnmarshalJSON implements json.Unmarshaler. Booleans, objects and arrays
// are rejected.
func (f *Field) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = Field(t)
	case json.Number:
		*f = Field(t.String())
	default:
		return fmt.Errorf("%w: form field must be a string or number, got %T", model.ErrInvalidInput, v)
	}
	return nil
}

// ListingForm is the add-listing form exactly as submitted.
type ListingForm struct {
	Title       Field `json:"title"`
	Description Field `json:"description"`
	Location    Field `json:"location"`
	Lat         Field `json:"lat"`
	Lng         Field `json:"lng"`
	Price       Field `json:"price"`
	Size        Field `json:"size"`
}

// Number reads the numeric prefix of raw. It returns 0 and false when raw is
// blank, has no numeric prefix, or is not finite.
func Number(raw string) (float64, bool) {
	m := leadingNumberRe.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Listing converts a submitted form into a well-typed draft. Unparsable
// numbers become 0, a negative price becomes 0, a blank size becomes
// model.DefaultSize and a blank description becomes EmptyDescription.
// Required fields are not checked here; catalog.Store.Add does that.
func Listing(form ListingForm) model.ListingDraft {
	lat, _ := Number(string(form.Lat))
	lng, _ := Number(string(form.Lng))
	price, _ := Number(string(form.Price))
	if price < 0 {
		price = 0
	}

	description := strings.TrimSpace(string(form.Description))
	if description == "" {
		description = EmptyDescription
	}
	size := strings.TrimSpace(string(form.Size))
	if size == "" {
		size = model.DefaultSize
	}

	return model.ListingDraft{
		Title:       strings.TrimSpace(string(form.Title)),
		Description: description,
		Location:    strings.TrimSpace(string(form.Location)),
		Lat:         lat,
		Lng:         lng,
		Price:       price,
		Size:        size,
	}
}
