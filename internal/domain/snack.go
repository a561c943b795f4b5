package domain

import "context"

// Snack mirrors the wire representation used by the external Snack Food API.
// The full snack record (name, locations, purchase history) lives in the
// external catalog; local records reference snacks by ID only.
type Snack struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Optional          bool   `json:"optional"`
	PurchaseLocations string `json:"purchaseLocations"`
	PurchaseCount     int    `json:"purchaseCount"`
	LastPurchaseDate  string `json:"lastPurchaseDate"`
}

// SnackSource is the pluggable catalog capability set. The production
// implementation talks to the Snack Food API over HTTP; alternates can be
// swapped in by configuration.
type SnackSource interface {
	// List returns every snack that can be nominated or voted on.
	List(ctx context.Context) ([]Snack, error)
	// Suggest submits a new snack. Latitude and longitude are optional and
	// are only transmitted when both are present.
	Suggest(ctx context.Context, name, location string, latitude, longitude *float64) (*Snack, error)
}
