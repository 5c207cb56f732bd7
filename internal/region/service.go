package region

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ogrishko/polygon-weather/internal/geo"
	"github.com/ogrishko/polygon-weather/internal/series"
)

// ErrVertexCount is returned when a region is created with a vertex count
// outside [MinVertices, MaxVertices].
var ErrVertexCount = fmt.Errorf("region must have between %d and %d vertices", MinVertices, MaxVertices)

// Archive abstracts the hourly temperature archive the service reads from
// (Open-Meteo ERA5 in production, a stub in tests).
type Archive interface {
	FetchHourly(ctx context.Context, pt geo.Point, from, to time.Time) (*series.RawPayload, error)
}

// Labeler resolves a display label for a coordinate. Implementations must
// degrade to an empty string rather than fail.
type Labeler interface {
	ReverseLabel(pt geo.Point) string
}

// Service orchestrates region storage, archive fetches and the series
// pipeline.
type Service struct {
	store    *Store
	archive  Archive
	labeler  Labeler
	pipeline *series.Pipeline
	sink     series.Sink

	// cacheWindow is the trailing window the background refresh keeps
	// cached per region.
	cacheWindow time.Duration
}

// NewService creates a Service. labeler may be nil; sink may be nil to
// discard pipeline diagnostics.
func NewService(store *Store, archive Archive, labeler Labeler, sink series.Sink, cacheWindow time.Duration) *Service {
	if sink == nil {
		sink = series.NopSink
	}
	return &Service{
		store:       store,
		archive:     archive,
		labeler:     labeler,
		pipeline:    series.NewPipeline(sink),
		sink:        sink,
		cacheWindow: cacheWindow,
	}
}

// Create validates and stores a new region. When name is empty the
// centroid is reverse-geocoded for a default label; a failed lookup
// leaves the name empty rather than blocking creation.
func (s *Service) Create(name string, vertices []geo.Point) (Region, error) {
	if len(vertices) < MinVertices || len(vertices) > MaxVertices {
		return Region{}, ErrVertexCount
	}

	centroid, err := geo.Centroid(vertices)
	if err != nil {
		return Region{}, err
	}

	if name == "" && s.labeler != nil {
		name = s.labeler.ReverseLabel(centroid)
	}

	r := Region{
		ID:        uuid.New(),
		Name:      name,
		Vertices:  vertices,
		Centroid:  centroid,
		CreatedAt: time.Now().UTC(),
	}
	s.store.Save(r)
	return r, nil
}

// Get delegates to the underlying store.
func (s *Service) Get(id uuid.UUID) (Region, error) {
	return s.store.Get(id)
}

// List delegates to the underlying store.
func (s *Service) List() []Region {
	return s.store.List()
}

// Delete delegates to the underlying store.
func (s *Service) Delete(id uuid.UUID) error {
	return s.store.Delete(id)
}

// Temperature returns the aggregated temperature series for a region.
// With no explicit range it serves the background-refreshed cache when
// fresh, falling back to a live archive fetch of the trailing window.
// An explicit range always fetches live. An empty result means "no data"
// for the requested window; it is not an error.
func (s *Service) Temperature(ctx context.Context, id uuid.UUID, rng *series.TimeRange, unit series.Unit) ([]series.Sample, error) {
	reg, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		if cached, err := s.store.GetSeries(id); err == nil {
			return series.Aggregate(cached.Samples, unit, s.sink)
		}
	}

	from, to := s.fetchWindow(rng)
	payload, err := s.archive.FetchHourly(ctx, reg.Centroid, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch archive for region %s: %w", id, err)
	}

	return s.pipeline.Run(payload, rng, unit), nil
}

// RefreshAll recomputes the cached trailing-window series for every
// stored region. Failures are logged per region; one region's failure
// does not abort the rest.
func (s *Service) RefreshAll(ctx context.Context) {
	regions := s.store.List()
	if len(regions) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, reg := range regions {
		reg := reg
		wg.Add(1)
		go func() {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			from, to := s.fetchWindow(nil)
			payload, err := s.archive.FetchHourly(fetchCtx, reg.Centroid, from, to)
			if err != nil {
				log.Printf("region %s: refresh fetch failed: %v", reg.ID, err)
				return
			}

			samples := s.pipeline.Run(payload, nil, series.UnitHour)
			if len(samples) == 0 {
				log.Printf("region %s: refresh produced no samples; keeping previous cache", reg.ID)
				return
			}

			s.store.SaveSeries(reg.ID, CachedSeries{
				Samples:    samples,
				ComputedAt: time.Now().UTC(),
			})
		}()
	}
	wg.Wait()
}

// fetchWindow derives the archive request dates. The archive API is keyed
// by whole dates, so bounds are widened to the enclosing days.
func (s *Service) fetchWindow(rng *series.TimeRange) (from, to time.Time) {
	if rng != nil && !rng.Start.IsZero() && !rng.End.IsZero() {
		from, to = rng.Start.UTC(), rng.End.UTC()
		if from.After(to) {
			from, to = to, from
		}
		return from, to
	}

	window := s.cacheWindow
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	now := time.Now().UTC()
	return now.Add(-window), now
}
