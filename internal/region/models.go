package region

import (
	"time"

	"github.com/google/uuid"

	"github.com/ogrishko/polygon-weather/internal/geo"
	"github.com/ogrishko/polygon-weather/internal/series"
)

// MinVertices and MaxVertices bound the polygon size accepted from the
// drawing client. The map UI enforces the same bounds; the server
// revalidates because the API is callable without it.
const (
	MinVertices = 3
	MaxVertices = 12
)

// Region is a user-drawn polygon tracked by the service. Centroid is
// derived from Vertices at creation time and is the point all weather
// lookups for the region use.
type Region struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Vertices  []geo.Point `json:"vertices"`
	Centroid  geo.Point   `json:"centroid"`
	CreatedAt time.Time   `json:"createdAt"` // always UTC
}

// CachedSeries is the most recent background-computed hourly series for a
// region, kept so the default temperature view does not hit the archive
// API on every request.
type CachedSeries struct {
	Samples    []series.Sample `json:"samples"`
	ComputedAt time.Time       `json:"computedAt"`
}
