package series

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// Aggregate reduces samples to the requested granularity. UnitHour is the
// identity and returns the input as-is. UnitDay groups samples by UTC
// calendar day and emits one mean sample per day, stamped at that day's
// midnight UTC. Any other unit fails with ErrUnsupportedUnit.
func Aggregate(s []Sample, u Unit, sink Sink) ([]Sample, error) {
	switch u {
	case UnitHour:
		return s, nil
	case UnitDay:
		return aggregateDaily(s, orNop(sink)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedUnit, u)
	}
}

// bucket is the transient per-day accumulator. It exists only for the
// duration of one aggregateDaily call.
type bucket struct {
	day   time.Time
	sum   float64
	count int
}

func aggregateDaily(s []Sample, sink Sink) []Sample {
	if len(s) == 0 {
		return nil
	}

	buckets := make(map[string]*bucket)
	for _, smp := range s {
		// Parse already enforces this, but aggregation must hold on its
		// own for callers that build samples by hand.
		if smp.Time.IsZero() || math.IsNaN(smp.Temperature) || math.IsInf(smp.Temperature, 0) {
			sink("sample_dropped", map[string]any{"time": smp.Time, "reason": "invalid sample"})
			continue
		}

		ts := smp.Time.UTC()
		key := ts.Format(dayKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)}
			buckets[key] = b
		}
		b.sum += smp.Temperature
		b.count++
	}

	out := make([]Sample, 0, len(buckets))
	for _, b := range buckets {
		mean := b.sum / float64(b.count)
		if math.IsNaN(mean) || math.IsInf(mean, 0) {
			continue
		}
		out = append(out, Sample{Time: b.day, Temperature: mean})
	}

	// Map iteration order is random; callers rely on chronological output.
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// Mean reduces a sample sequence to a single scalar temperature, for
// callers that color-code a whole region. ok is false for empty input.
func Mean(s []Sample) (mean float64, ok bool) {
	if len(s) == 0 {
		return 0, false
	}
	var sum float64
	for _, smp := range s {
		sum += smp.Temperature
	}
	return sum / float64(len(s)), true
}
