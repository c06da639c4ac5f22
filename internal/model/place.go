package model

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a single search result from the places collaborator.
type Place struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	Location      GeoPoint `json:"location"`
	PreviewHandle string   `json:"preview_handle,omitempty"`
}

// LookAroundPreview is the street-level preview handle of a place.
type LookAroundPreview struct {
	PlaceID string `json:"place_id"`
	Scene   string `json:"scene"`
}
