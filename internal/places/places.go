// Package places adapts the external place index: free-text search around
// the map region and look-around preview lookup for a selected place.
package places

import (
	"context"
	"errors"

	"github.com/ghfreaks/eventlocator/internal/model"
)

// Lookup errors.
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrNoPreview     = errors.New("no preview available")
)

// Searcher finds places and their look-around previews.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Place, error)
	LookAround(ctx context.Context, placeID string) (*model.LookAroundPreview, error)
}

// Region is the area searches are centred on. RadiusMeters of zero leaves
// results unrestricted, only ordered by distance from Center.
type Region struct {
	Center       model.GeoPoint
	RadiusMeters float64
}

// DefaultRegion is centred on Marienplatz, Munich.
func DefaultRegion() Region {
	return Region{Center: model.GeoPoint{Lat: 48.137154, Lon: 11.576124}}
}
