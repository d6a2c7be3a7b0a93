package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"astroengine/internal/zodiac"
	"astroengine/pkg/platform/sentinel"
)

const maxRemoteBytes = 256 << 10

// TimezoneResolver maps coordinates to an IANA zone name.
type TimezoneResolver interface {
	Timezone(ctx context.Context, lat, lon float64) (string, error)
}

// NominatimClient resolves places through an OpenStreetMap Nominatim
// instance. Calls share one rate limiter; the public instance allows one
// request per second.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	timezones  TimezoneResolver
}

// NewNominatimClient constructs the remote geocoder.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, rps float64, tz TimezoneResolver) *NominatimClient {
	return &NominatimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		timezones:  tz,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up the best match for place and its timezone.
func (c *NominatimClient) Resolve(ctx context.Context, place string) (Location, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Location{}, fmt.Errorf("nominatim throttle: %w", err)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []nominatimResult
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/search?"+q.Encode(), c.userAgent, &results); err != nil {
		return Location{}, fmt.Errorf("nominatim search: %w", err)
	}
	if len(results) == 0 {
		return Location{}, ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim longitude: %w", err)
	}

	tz, err := c.timezones.Timezone(ctx, lat, lon)
	if err != nil {
		return Location{}, err
	}
	return Location{
		Latitude:  zodiac.Round(lat, 6),
		Longitude: zodiac.Round(lon, 6),
		Timezone:  tz,
		Address:   results[0].DisplayName,
	}, nil
}

// TimeAPIResolver resolves zones through a timeapi.io compatible service.
type TimeAPIResolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewTimeAPIResolver constructs the timezone resolver.
func NewTimeAPIResolver(baseURL string, timeout time.Duration) *TimeAPIResolver {
	return &TimeAPIResolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Timezone returns the zone containing the coordinates. An empty answer (open
// ocean, unmapped territory) resolves to ErrPlaceNotFound.
func (r *TimeAPIResolver) Timezone(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))

	var resp struct {
		TimeZone string `json:"timeZone"`
	}
	if err := getJSON(ctx, r.httpClient, r.baseURL+"/api/timezone/coordinate?"+q.Encode(), "", &resp); err != nil {
		return "", fmt.Errorf("timezone lookup: %w", err)
	}
	if resp.TimeZone == "" {
		return "", fmt.Errorf("no timezone at %.4f,%.4f: %w", lat, lon, ErrPlaceNotFound)
	}
	return resp.TimeZone, nil
}

func getJSON(ctx context.Context, hc *http.Client, rawURL, userAgent string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrPlaceNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRemoteBytes)).Decode(out); err != nil {
		return errors.Join(sentinel.ErrInvalidState, err)
	}
	return nil
}
