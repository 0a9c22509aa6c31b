package catalog

import "billboard-hub-backend/internal/model"

// Demo identities referenced by the seed listings.
const (
	DemoOwnerID    = "demo-owner"
	DemoCustomerID = "demo-customer"
)

// Seed returns the demo listings written on first run.
func Seed() []model.Billboard {
	holder := DemoCustomerID
	return []model.Billboard{
		{
			ID:          "bb-1",
			Title:       "Downtown LED Board",
			Description: "High visibility LED billboard in downtown district",
			Location:    "Downtown, City Center",
			Lat:         40.7128,
			Lng:         -74.006,
			Price:       1500,
			Size:        "20ft x 10ft",
			Status:      model.StatusAvailable,
			OwnerID:     DemoOwnerID,
		},
		{
			ID:          "bb-2",
			Title:       "Airport Highway Billboard",
			Description: "Prime location on route to the airport with heavy traffic",
			Location:    "Airport Hwy 101",
			Lat:         37.6213,
			Lng:         -122.379,
			Price:       2200,
			Size:        "30ft x 14ft",
			Status:      model.StatusAvailable,
			OwnerID:     DemoOwnerID,
		},
		{
			ID:          "bb-3",
			Title:       "Suburban Static Board",
			Description: "Affordable static billboard in suburban shopping area",
			Location:    "Maple Ave, Suburbia",
			Lat:         34.0522,
			Lng:         -118.2437,
			Price:       800,
			Size:        "14ft x 10ft",
			Status:      model.StatusBooked,
			OwnerID:     DemoOwnerID,
			BookedBy:    &holder,
		},
	}
}
