package series

import (
	"math"
	"testing"
	"time"
)

func hourlyPayload(times []string, temps []float64) *RawPayload {
	return &RawPayload{
		Hourly: &HourlyBlock{Time: times, Temperature2M: temps},
	}
}

// captureSink records emitted diagnostic events for assertions.
func captureSink(events *[]string) Sink {
	return func(event string, _ map[string]any) {
		*events = append(*events, event)
	}
}

func TestParseValidPayload(t *testing.T) {
	p := hourlyPayload(
		[]string{"2025-07-09T00:00", "2025-07-09T01:00", "2025-07-09T02:00"},
		[]float64{10, 11, 12},
	)

	got := Parse(p, nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}

	want := time.Date(2025, 7, 9, 1, 0, 0, 0, time.UTC)
	if !got[1].Time.Equal(want) || got[1].Temperature != 11 {
		t.Fatalf("unexpected sample: %+v", got[1])
	}

	// Order must match the payload.
	for i := 1; i < len(got); i++ {
		if !got[i-1].Time.Before(got[i].Time) {
			t.Fatalf("samples out of order at index %d", i)
		}
	}
}

func TestParseTruncatesMismatchedArrays(t *testing.T) {
	p := hourlyPayload(
		[]string{"2025-07-09T00:00", "2025-07-09T01:00", "2025-07-09T02:00"},
		[]float64{5, 6},
	)

	var events []string
	got := Parse(p, captureSink(&events))
	if len(got) != 2 {
		t.Fatalf("expected 2 samples after truncation, got %d", len(got))
	}
	if got[0].Temperature != 5 || got[1].Temperature != 6 {
		t.Fatalf("unexpected temperatures: %+v", got)
	}

	found := false
	for _, e := range events {
		if e == "payload_truncated" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected payload_truncated diagnostic, got %v", events)
	}
}

func TestParseDropsInvalidEntries(t *testing.T) {
	p := hourlyPayload(
		[]string{"2025-07-09T00:00", "not-a-time", "2025-07-09T02:00", "2025-07-09T03:00"},
		[]float64{10, 11, math.NaN(), math.Inf(1)},
	)

	got := Parse(p, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving sample, got %d: %+v", len(got), got)
	}
	if got[0].Temperature != 10 {
		t.Fatalf("wrong sample survived: %+v", got[0])
	}
}

func TestParseEmptyInputs(t *testing.T) {
	cases := map[string]*RawPayload{
		"nil payload":  nil,
		"nil hourly":   {},
		"nil times":    hourlyPayload(nil, []float64{1}),
		"nil temps":    hourlyPayload([]string{"2025-07-09T00:00"}, nil),
		"empty arrays": hourlyPayload([]string{}, []float64{}),
	}
	for name, p := range cases {
		if got := Parse(p, nil); len(got) != 0 {
			t.Errorf("%s: expected empty result, got %d samples", name, len(got))
		}
	}
}

func TestParseInstantAcceptsRFC3339(t *testing.T) {
	ts, err := ParseInstant("2025-07-09T13:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ts.Equal(time.Date(2025, 7, 9, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant: %v", ts)
	}
}

func TestValidPayload(t *testing.T) {
	if ValidPayload(nil, nil) {
		t.Fatal("nil payload must be invalid")
	}
	if ValidPayload(&RawPayload{}, nil) {
		t.Fatal("payload without hourly block must be invalid")
	}
	if ValidPayload(hourlyPayload(nil, []float64{1}), nil) {
		t.Fatal("payload without time array must be invalid")
	}
	if ValidPayload(hourlyPayload([]string{"2025-07-09T00:00"}, nil), nil) {
		t.Fatal("payload without temperature array must be invalid")
	}

	// A length mismatch is reported but does not fail validation; the
	// parser recovers by truncating.
	var events []string
	p := hourlyPayload([]string{"2025-07-09T00:00", "2025-07-09T01:00"}, []float64{1})
	if !ValidPayload(p, captureSink(&events)) {
		t.Fatal("length mismatch must not fail validation")
	}
	if len(events) != 1 || events[0] != "payload_length_mismatch" {
		t.Fatalf("expected payload_length_mismatch diagnostic, got %v", events)
	}
}

func TestElevationUnmarshalBothForms(t *testing.T) {
	var e Elevation
	if err := e.UnmarshalJSON([]byte(`38.5`)); err != nil || e != 38.5 {
		t.Fatalf("numeric form: got %v, err %v", e, err)
	}
	if err := e.UnmarshalJSON([]byte(`"120"`)); err != nil || e != 120 {
		t.Fatalf("quoted form: got %v, err %v", e, err)
	}
	if err := e.UnmarshalJSON([]byte(`null`)); err != nil || e != 0 {
		t.Fatalf("null form: got %v, err %v", e, err)
	}
}
