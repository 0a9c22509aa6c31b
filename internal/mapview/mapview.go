package mapview

import (
	"fmt"
	"strconv"

	"billboard-hub-backend/internal/model"
)

// Preview is a viewable location reference for one listing.
type Preview struct {
	BillboardID string  `json:"billboardId"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Zoom        int     `json:"zoom"`
	URL         string  `json:"url"`
}

// URL builds a map viewer link centred on lat/lng with a marker, in the
// OpenStreetMap "?mlat=..&mlon=..#map=zoom/lat/lng" form.
func URL(baseURL string, lat, lng float64, zoom int) string {
	la := strconv.FormatFloat(lat, 'f', -1, 64)
	ln := strconv.FormatFloat(lng, 'f', -1, 64)
	return fmt.Sprintf("%s?mlat=%s&mlon=%s#map=%d/%s/%s", baseURL, la, ln, zoom, la, ln)
}

// For returns the preview for b.
func For(baseURL string, b model.Billboard, zoom int) Preview {
	return Preview{
		BillboardID: b.ID,
		Lat:         b.Lat,
		Lng:         b.Lng,
		Zoom:        zoom,
		URL:         URL(baseURL, b.Lat, b.Lng, zoom),
	}
}

// Select picks the listing with the given id from items. When id is empty or
// not among items it falls back to the first listing. ok is false only for an
// empty list.
func Select(items []model.Billboard, id string) (model.Billboard, bool) {
	if len(items) == 0 {
		return model.Billboard{}, false
	}
	for _, b := range items {
		if b.ID == id {
			return b, true
		}
	}
	return items[0], true
}
