package geocode

import (
	"log"

	"github.com/kelvins/geocoder"

	"github.com/ogrishko/polygon-weather/internal/geo"
)

// Labeler reverse-geocodes coordinates into display labels via the Google
// geocoding API. It is entirely optional: without an API key every lookup
// returns the empty string.
type Labeler struct {
	enabled bool
}

// New creates a Labeler. An empty apiKey disables lookups.
func New(apiKey string) *Labeler {
	if apiKey == "" {
		return &Labeler{}
	}
	geocoder.ApiKey = apiKey
	return &Labeler{enabled: true}
}

// ReverseLabel returns a "City, Country" style label for pt, or "" when
// reverse geocoding is disabled or fails. Failures are logged, never
// propagated; a missing label must not block region creation.
func (l *Labeler) ReverseLabel(pt geo.Point) string {
	if l == nil || !l.enabled {
		return ""
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  pt.Lat,
		Longitude: pt.Lng,
	})
	if err != nil {
		log.Printf("geocode: reverse lookup failed for (%f, %f): %v", pt.Lat, pt.Lng, err)
		return ""
	}
	if len(addresses) == 0 {
		return ""
	}

	a := addresses[0]
	if a.City != "" && a.Country != "" {
		return a.City + ", " + a.Country
	}
	return a.FormattedAddress
}
