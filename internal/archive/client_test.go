package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ogrishko/polygon-weather/internal/geo"
)

const archiveResponse = `{
	"latitude": 52.52,
	"longitude": 13.41,
	"generationtime_ms": 0.23,
	"utc_offset_seconds": 0,
	"timezone": "UTC",
	"timezone_abbreviation": "UTC",
	"elevation": 38.0,
	"hourly_units": {"time": "iso8601", "temperature_2m": "°C"},
	"hourly": {
		"time": ["2025-07-09T00:00", "2025-07-09T01:00"],
		"temperature_2m": [14.2, 13.8]
	}
}`

func TestFetchHourly(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"latitude":   q.Get("latitude"),
			"longitude":  q.Get("longitude"),
			"start_date": q.Get("start_date"),
			"end_date":   q.Get("end_date"),
			"hourly":     q.Get("hourly"),
			"timezone":   q.Get("timezone"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(archiveResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	from := time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	payload, err := c.FetchHourly(context.Background(), geo.Point{Lat: 52.52, Lng: 13.41}, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["latitude"] != "52.52" || gotQuery["longitude"] != "13.41" {
		t.Fatalf("unexpected coordinates in query: %v", gotQuery)
	}
	if gotQuery["start_date"] != "2025-07-09" || gotQuery["end_date"] != "2025-07-10" {
		t.Fatalf("unexpected dates in query: %v", gotQuery)
	}
	if gotQuery["hourly"] != "temperature_2m" || gotQuery["timezone"] != "UTC" {
		t.Fatalf("unexpected variable selection: %v", gotQuery)
	}

	if payload.Hourly == nil || len(payload.Hourly.Time) != 2 {
		t.Fatalf("payload not decoded: %+v", payload)
	}
	if payload.Hourly.Temperature2M[1] != 13.8 {
		t.Fatalf("unexpected temperature: %v", payload.Hourly.Temperature2M)
	}
	if float64(payload.Elevation) != 38.0 {
		t.Fatalf("unexpected elevation: %v", payload.Elevation)
	}
}

func TestFetchHourlyRetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(archiveResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	payload, err := c.FetchHourly(context.Background(), geo.Point{}, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if hits != 2 {
		t.Fatalf("expected 2 attempts, got %d", hits)
	}
	if payload.Hourly == nil {
		t.Fatal("payload not decoded after retry")
	}
}

func TestFetchHourlyHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.FetchHourly(ctx, geo.Point{}, time.Now(), time.Now()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
