package models

// Marker is a map pin. Placed markers are persisted and draggable; markers
// derived from records are read-only.
type Marker struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Draggable bool    `json:"draggable"`
	Label     string  `json:"label,omitempty"`
}

func (m Marker) Key() string { return m.ID }

func (m Marker) WithKey(id string) Marker {
	m.ID = id
	return m
}

// ValidCoordinates reports whether lat/lng are within WGS84 bounds.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
