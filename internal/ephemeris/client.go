package ephemeris

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"astroengine/internal/zodiac"
	"astroengine/pkg/platform/circuit"
	"astroengine/pkg/platform/sentinel"
)

const (
	opPosition = "position"
	opHouses   = "houses"
	opAyanamsa = "ayanamsa"

	// maxResponseBytes bounds a decoded response body.
	maxResponseBytes = 64 << 10
)

// Client talks JSON to a remote ephemeris service:
//
//	GET /v1/position?jd=&body=      -> {"longitude","latitude","speed"}
//	GET /v1/houses?jd=&lat=&lon=&system= -> {"cusps":[12],"ascendant","midheaven"}
//	GET /v1/ayanamsa?jd=&mode=lahiri -> {"ayanamsa"}
//
// Calls are guarded by a circuit breaker. While open, calls fail fast with
// sentinel.ErrUnavailable except for one probe per probe interval.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	breaker       *circuit.Breaker
	probeInterval time.Duration
	metrics       *Metrics
	logger        *slog.Logger
	tracer        trace.Tracer

	mu        sync.Mutex
	lastProbe time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithProbeInterval sets how often an open breaker lets one call through.
func WithProbeInterval(d time.Duration) Option {
	return func(c *Client) {
		c.probeInterval = d
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid ephemeris url %q", baseURL)
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		breaker:       circuit.New("ephemeris"),
		probeInterval: 5 * time.Second,
		logger:        slog.Default(),
		tracer:        otel.Tracer("astroengine/ephemeris"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type positionResponse struct {
	Longitude *float64 `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Speed     float64  `json:"speed"`
}

// Position fetches the tropical position of body.
func (c *Client) Position(ctx context.Context, jd float64, body zodiac.Body) (Position, error) {
	if body == zodiac.Ketu {
		return Position{}, NewProviderError(ErrorInternal, opPosition, "ketu is derived from rahu", nil)
	}
	q := url.Values{}
	q.Set("jd", formatFloat(jd))
	q.Set("body", strings.ToLower(body.String()))

	var resp positionResponse
	err := c.call(ctx, opPosition, q, &resp, func() error {
		if resp.Longitude == nil || !finite(*resp.Longitude, resp.Latitude, resp.Speed) {
			return errors.New("missing or non-finite position")
		}
		return nil
	}, attribute.String("ephemeris.body", body.String()))
	if err != nil {
		return Position{}, err
	}
	return Position{
		Longitude: zodiac.Normalize(*resp.Longitude),
		Latitude:  resp.Latitude,
		Speed:     resp.Speed,
	}, nil
}

type housesResponse struct {
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
	Midheaven float64   `json:"midheaven"`
}

// Houses fetches the twelve cusps and angles for a location.
func (c *Client) Houses(ctx context.Context, jd, lat, lon float64, system HouseSystem) (HouseTable, error) {
	q := url.Values{}
	q.Set("jd", formatFloat(jd))
	q.Set("lat", formatFloat(lat))
	q.Set("lon", formatFloat(lon))
	q.Set("system", system.Code())

	var resp housesResponse
	err := c.call(ctx, opHouses, q, &resp, func() error {
		if len(resp.Cusps) != len(zodiac.Cusps{}) {
			return fmt.Errorf("expected 12 cusps, got %d", len(resp.Cusps))
		}
		if !finite(append([]float64{resp.Ascendant, resp.Midheaven}, resp.Cusps...)...) {
			return errors.New("non-finite house data")
		}
		return nil
	}, attribute.String("ephemeris.house_system", system.String()))
	if err != nil {
		return HouseTable{}, err
	}

	var table HouseTable
	for i, cusp := range resp.Cusps {
		table.Cusps[i] = zodiac.Normalize(cusp)
	}
	table.Ascendant = zodiac.Normalize(resp.Ascendant)
	table.Midheaven = zodiac.Normalize(resp.Midheaven)
	return table, nil
}

type ayanamsaResponse struct {
	Ayanamsa *float64 `json:"ayanamsa"`
}

// Ayanamsa fetches the Lahiri offset.
func (c *Client) Ayanamsa(ctx context.Context, jd float64) (float64, error) {
	q := url.Values{}
	q.Set("jd", formatFloat(jd))
	q.Set("mode", "lahiri")

	var resp ayanamsaResponse
	err := c.call(ctx, opAyanamsa, q, &resp, func() error {
		if resp.Ayanamsa == nil || !finite(*resp.Ayanamsa) {
			return errors.New("missing ayanamsa")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return *resp.Ayanamsa, nil
}

// call performs one GET, decodes into out and runs validate. Every outcome is
// recorded against the breaker, the metrics and the span.
func (c *Client) call(ctx context.Context, op string, q url.Values, out any, validate func() error, attrs ...attribute.KeyValue) error {
	ctx, span := c.tracer.Start(ctx, "ephemeris."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	if !c.allow() {
		err := NewProviderError(ErrorProviderOutage, op, "circuit open", sentinel.ErrUnavailable)
		c.metrics.IncrementFailure(op, ErrorProviderOutage)
		span.SetStatus(codes.Error, "circuit open")
		return err
	}

	start := time.Now()
	err := c.do(ctx, op, q, out)
	if err == nil {
		if verr := validate(); verr != nil {
			err = NewProviderError(ErrorBadData, op, "invalid response", verr)
		}
	}
	c.metrics.ObserveCall(op, time.Since(start))

	if err != nil {
		category := GetCategory(err)
		c.metrics.IncrementFailure(op, category)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(category))
		if countsAgainstBreaker(category) {
			c.recordFailure(ctx)
		}
		return err
	}
	c.recordSuccess(ctx)
	return nil
}

func (c *Client) do(ctx context.Context, op string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/"+op+"?"+q.Encode(), nil)
	if err != nil {
		return NewProviderError(ErrorInternal, op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return NewProviderError(ErrorTimeout, op, "request timed out", err)
		}
		return NewProviderError(ErrorProviderOutage, op, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, op, "rate limited", nil)
	case resp.StatusCode >= 500:
		return NewProviderError(ErrorProviderOutage, op, fmt.Sprintf("status %d", resp.StatusCode), sentinel.ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		return NewProviderError(ErrorContractMismatch, op, fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return NewProviderError(ErrorBadData, op, "decode response", err)
	}
	return nil
}

// allow reports whether a call may proceed given the breaker state.
func (c *Client) allow() bool {
	if !c.breaker.IsOpen() {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastProbe) < c.probeInterval {
		return false
	}
	c.lastProbe = time.Now()
	return true
}

func (c *Client) recordFailure(ctx context.Context) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.mu.Lock()
		c.lastProbe = time.Now()
		c.mu.Unlock()
		c.metrics.SetBreakerOpen(true)
		c.logger.WarnContext(ctx, "ephemeris circuit opened", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.metrics.SetBreakerOpen(false)
		c.logger.InfoContext(ctx, "ephemeris circuit closed", "breaker", c.breaker.Name())
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
