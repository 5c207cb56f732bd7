package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ogrishko/polygon-weather/internal/geo"
	"github.com/ogrishko/polygon-weather/internal/series"
)

// DefaultBaseURL is the Open-Meteo ERA5 hourly archive endpoint. No API
// key required.
const DefaultBaseURL = "https://archive-api.open-meteo.com/v1/era5"

const dateLayout = "2006-01-02"

// Client fetches hourly temperature payloads from the Open-Meteo archive
// API with retries, backoff and a circuit breaker.
type Client struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-archive",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// FetchHourly retrieves the hourly temperature_2m series for pt covering
// the days from from through to, inclusive. Timestamps in the response
// are UTC.
func (c *Client) FetchHourly(ctx context.Context, pt geo.Point, from, to time.Time) (*series.RawPayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(pt.Lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(pt.Lng, 'f', -1, 64))
		values.Set("start_date", from.UTC().Format(dateLayout))
		values.Set("end_date", to.UTC().Format(dateLayout))
		values.Set("hourly", "temperature_2m")
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload series.RawPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode archive response: %w", err)
	}

	return &payload, nil
}
