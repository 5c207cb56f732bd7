package series

// Pipeline composes Parse, FilterByRange and Aggregate into the single
// transformation the display layer consumes. Empty output from any stage
// is a valid terminal state, not an error, so each stage short-circuits
// the rest.
type Pipeline struct {
	sink Sink
}

// NewPipeline creates a Pipeline reporting diagnostics to sink. A nil
// sink discards them.
func NewPipeline(sink Sink) *Pipeline {
	return &Pipeline{sink: orNop(sink)}
}

// Run transforms a raw archive payload into display-ready samples. rng
// may be nil to skip range filtering. Run never fails: structural
// problems in the payload degrade to per-item omission or an empty
// result, and an unsupported unit yields an empty result with a
// diagnostic.
func (p *Pipeline) Run(raw *RawPayload, rng *TimeRange, unit Unit) []Sample {
	if !ValidPayload(raw, p.sink) {
		return nil
	}

	samples := Parse(raw, p.sink)
	if len(samples) == 0 {
		return nil
	}

	if rng != nil {
		samples = FilterByRange(samples, *rng, p.sink)
		if len(samples) == 0 {
			return nil
		}
	}

	out, err := Aggregate(samples, unit, p.sink)
	if err != nil {
		p.sink("aggregate_failed", map[string]any{"unit": string(unit), "reason": err.Error()})
		return nil
	}
	return out
}
