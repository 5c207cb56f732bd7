package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sample is a single time-temperature observation. Samples are created by
// Parse and treated as immutable from then on.
type Sample struct {
	Time        time.Time `json:"time"` // always UTC
	Temperature float64   `json:"temperature"`
}

// RawPayload mirrors the Open-Meteo hourly archive response. The field
// names and nesting (hourly.time, hourly.temperature_2m) are the
// provider's wire contract; do not rename.
type RawPayload struct {
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	GenerationTimeMS float64      `json:"generationtime_ms"`
	UTCOffsetSeconds int          `json:"utc_offset_seconds"`
	Timezone         string       `json:"timezone"`
	TimezoneAbbr     string       `json:"timezone_abbreviation"`
	Elevation        Elevation    `json:"elevation"`
	HourlyUnits      HourlyUnits  `json:"hourly_units"`
	Hourly           *HourlyBlock `json:"hourly"`
}

// HourlyBlock carries the parallel time/temperature arrays. The provider
// does not always keep them the same length; Parse truncates to the
// shorter one.
type HourlyBlock struct {
	Time          []string  `json:"time"`
	Temperature2M []float64 `json:"temperature_2m"`
}

// HourlyUnits is display metadata only; the pipeline never interprets it.
type HourlyUnits struct {
	Time          string `json:"time"`
	Temperature2M string `json:"temperature_2m"`
}

// Elevation tolerates both the numeric and the quoted form the archive
// API has returned over time.
type Elevation float64

func (e *Elevation) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*e = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid elevation %q: %w", s, err)
	}
	*e = Elevation(f)
	return nil
}

// TimeRange is an inclusive [Start, End] window. A zero-valued bound
// makes the range unusable; FilterByRange treats such a range as a no-op.
// Inverted bounds are normalized by swapping, so callers may pass the
// endpoints in either order.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Unit selects the aggregation granularity.
type Unit string

const (
	UnitHour Unit = "hour" // identity, no bucketing
	UnitDay  Unit = "day"  // one mean sample per UTC calendar day
)

// ErrUnsupportedUnit is returned by Aggregate for units it does not know.
// Failing fast here beats the alternative of silently dropping every
// sample.
var ErrUnsupportedUnit = errors.New("unsupported aggregation unit")

// ParseUnit maps a user-supplied unit string to a Unit. The empty string
// defaults to UnitHour.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(UnitHour):
		return UnitHour, nil
	case string(UnitDay):
		return UnitDay, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
	}
}
