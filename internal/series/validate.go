package series

// ValidPayload reports whether p has the structure Parse depends on: a
// non-nil hourly block with both inner arrays present.
//
// A length mismatch between hourly.time and hourly.temperature_2m is
// reported through sink but does not fail validation; Parse is the single
// source of truth for that condition and recovers by truncating to the
// shorter array.
func ValidPayload(p *RawPayload, sink Sink) bool {
	sink = orNop(sink)

	if p == nil || p.Hourly == nil {
		return false
	}
	if p.Hourly.Time == nil || p.Hourly.Temperature2M == nil {
		return false
	}

	if len(p.Hourly.Time) != len(p.Hourly.Temperature2M) {
		sink("payload_length_mismatch", map[string]any{
			"time":           len(p.Hourly.Time),
			"temperature_2m": len(p.Hourly.Temperature2M),
		})
	}
	return true
}
