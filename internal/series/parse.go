package series

import (
	"fmt"
	"math"
	"time"
)

// hourlyTimeLayout is the minute-resolution layout the archive API uses
// for hourly timestamps (no zone suffix; values are UTC when the request
// asks for timezone=UTC).
const hourlyTimeLayout = "2006-01-02T15:04"

// Parse converts a raw archive payload into ordered samples. It never
// fails: a missing or empty hourly block yields an empty result, a length
// mismatch between the two arrays truncates both to the shorter one, and
// individual entries with an unparseable timestamp or a non-finite
// temperature are dropped. Input order is preserved.
func Parse(p *RawPayload, sink Sink) []Sample {
	sink = orNop(sink)

	if p == nil || p.Hourly == nil {
		return nil
	}
	times := p.Hourly.Time
	temps := p.Hourly.Temperature2M
	if len(times) == 0 || len(temps) == 0 {
		return nil
	}

	n := len(times)
	if len(temps) < n {
		n = len(temps)
	}
	if n != len(times) || n != len(temps) {
		sink("payload_truncated", map[string]any{
			"time":           len(times),
			"temperature_2m": len(temps),
			"used":           n,
		})
	}

	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		ts, err := ParseInstant(times[i])
		if err != nil {
			sink("sample_dropped", map[string]any{"index": i, "reason": err.Error()})
			continue
		}
		if math.IsNaN(temps[i]) || math.IsInf(temps[i], 0) {
			sink("sample_dropped", map[string]any{"index": i, "reason": "non-finite temperature"})
			continue
		}
		out = append(out, Sample{Time: ts, Temperature: temps[i]})
	}
	return out
}

// ParseInstant parses an archive timestamp, accepting RFC3339 as well as
// the provider's minute-resolution layout. The result is always UTC.
func ParseInstant(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.Parse(hourlyTimeLayout, s); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
