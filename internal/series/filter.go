package series

// FilterByRange keeps the samples that fall inside the inclusive
// [r.Start, r.End] window. A range with a zero-valued bound cannot be
// applied; the input is returned unchanged and a diagnostic is emitted
// rather than failing the call. Inverted bounds are swapped locally so
// the result is order-independent in the endpoints. Samples with a
// zero-valued time are dropped.
func FilterByRange(s []Sample, r TimeRange, sink Sink) []Sample {
	sink = orNop(sink)

	if len(s) == 0 {
		return s
	}
	if r.Start.IsZero() || r.End.IsZero() {
		sink("range_ignored", map[string]any{"start": r.Start, "end": r.End})
		return s
	}

	start, end := r.Start, r.End
	if start.After(end) {
		start, end = end, start
	}

	out := make([]Sample, 0, len(s))
	for _, smp := range s {
		if smp.Time.IsZero() {
			continue
		}
		if !smp.Time.Before(start) && !smp.Time.After(end) {
			out = append(out, smp)
		}
	}
	return out
}
