package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"astroengine/internal/aspect"
	"astroengine/internal/chart"
	"astroengine/internal/events"
	"astroengine/internal/geocode"
	"astroengine/internal/transit"
	httptransport "astroengine/internal/transport/http"
	"astroengine/internal/transport/http/mocks"
	"astroengine/internal/zodiac"
	dErrors "astroengine/pkg/domain-errors"
	"astroengine/pkg/platform/middleware/cors"
	"astroengine/pkg/testutil"
)

// =============================================================================
// HTTP Handler Test Suite
// =============================================================================
// Requests go through the full router so middleware, routing and error
// translation are covered together. Services are mocked.

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ChartComputed
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ChartComputed) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close(context.Context) error { return nil }

type HandlerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	charts    *mocks.MockChartService
	transits  *mocks.MockTransitService
	publisher *recordingPublisher
	router    http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.charts = mocks.NewMockChartService(s.ctrl)
	s.transits = mocks.NewMockTransitService(s.ctrl)
	s.publisher = &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	patterns, err := cors.CompilePatterns([]string{`https://.*\.vercel\.app`})
	s.Require().NoError(err)

	h := httptransport.New(s.charts, s.transits, s.publisher, logger, "test-ephemeris")
	s.router = httptransport.NewRouter(h, httptransport.RouterConfig{
		CORSOrigins:        []string{"https://app.example.com"},
		CORSOriginPatterns: patterns,
		Logger:             logger,
		MetricsHandler:     promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	})
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	return testutil.Serve(s.router, method, path, body)
}

func sampleChart() *chart.NatalChart {
	return &chart.NatalChart{
		BirthData: chart.BirthData{
			Place:   "Delhi",
			Instant: time.Date(1990, time.May, 15, 10, 30, 0, 0, time.UTC),
		},
		Planets: map[zodiac.Body]chart.Placement{
			zodiac.Moon: {Sidereal: zodiac.ClassifySign(15)},
		},
		BigThree: chart.BigThree{Rising: chart.RisingSummary{Sign: zodiac.Libra}},
	}
}

const validBody = `{"year":1990,"month":5,"day":15,"hour":16,"minute":0,"place":" Delhi "}`

// =============================================================================
// POST /calculate
// =============================================================================

func (s *HandlerSuite) TestCalculate() {
	c := sampleChart()
	s.charts.EXPECT().Compute(gomock.Any(), chart.Request{
		Year: 1990, Month: 5, Day: 15, Hour: 16, Place: "Delhi",
	}).Return(c, nil)
	s.transits.EXPECT().ActiveTransits(gomock.Any(), c).Return([]aspect.TransitRecord{
		{TransitPlanet: zodiac.Saturn, NatalPlanet: zodiac.Sun, Aspect: aspect.Square, Significance: aspect.Major},
	}, nil)

	rec := s.do(http.MethodPost, "/calculate", validBody)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.NotEmpty(rec.Header().Get("X-Request-ID"))

	var resp struct {
		Success bool `json:"success"`
		Dasha   struct {
			StartingRuler string `json:"starting_ruler"`
		} `json:"dasha"`
		ActiveTransits []map[string]any `json:"active_transits"`
		Chart          map[string]any   `json:"chart"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Equal("Venus", resp.Dasha.StartingRuler)
	s.Require().Len(resp.ActiveTransits, 1)
	s.Equal("MAJOR", resp.ActiveTransits[0]["significance"])
	s.Contains(resp.Chart, "birth_data")

	s.Require().Len(s.publisher.events, 1)
	s.Equal("Delhi", s.publisher.events[0].Place)
	s.Equal(zodiac.Libra, s.publisher.events[0].RisingSign)
	s.Equal(rec.Header().Get("X-Request-ID"), s.publisher.events[0].RequestID)
}

func (s *HandlerSuite) TestCalculateRejectsBadInput() {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"year":`, "bad_request"},
		{"nonexistent date", `{"year":2023,"month":2,"day":30,"hour":1,"minute":0,"place":"Delhi"}`, "validation_error"},
		{"missing place", `{"year":2023,"month":2,"day":3,"hour":1,"minute":0}`, "validation_error"},
		{"second out of range", `{"year":2023,"month":2,"day":3,"hour":1,"minute":0,"second":75,"place":"Delhi"}`, "validation_error"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/calculate", tc.body)
			testutil.AssertError(s.T(), rec, http.StatusBadRequest, tc.code)
		})
	}
}

func (s *HandlerSuite) TestCalculatePlaceNotFound() {
	s.charts.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil,
		dErrors.Wrap(geocode.ErrPlaceNotFound, dErrors.CodePlaceNotFound, "Cannot find location: Atlantis"))

	rec := s.do(http.MethodPost, "/calculate", `{"year":1990,"month":5,"day":15,"hour":16,"minute":0,"place":"Atlantis"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error":"place_not_found","error_description":"Cannot find location: Atlantis"}`, rec.Body.String())
	s.Empty(s.publisher.events)
}

func (s *HandlerSuite) TestCalculateComputationFailure() {
	s.charts.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil,
		dErrors.Wrap(errors.New("ephemeris exploded"), dErrors.CodeComputation, "calculation error"))

	rec := s.do(http.MethodPost, "/calculate", validBody)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"calculation_error","error_description":"calculation error"}`, rec.Body.String())
	s.NotContains(rec.Body.String(), "exploded")
}

func (s *HandlerSuite) TestCalculateTransitFailure() {
	c := sampleChart()
	s.charts.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(c, nil)
	s.transits.EXPECT().ActiveTransits(gomock.Any(), c).Return(nil, errors.New("timeout"))

	rec := s.do(http.MethodPost, "/calculate", validBody)
	testutil.AssertError(s.T(), rec, http.StatusInternalServerError, "calculation_error")
	s.Empty(s.publisher.events)
}

// =============================================================================
// GET endpoints
// =============================================================================

func (s *HandlerSuite) TestTransitsNow() {
	at := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.transits.EXPECT().Snapshot(gomock.Any()).Return(&transit.Snapshot{
		Date: at,
		Planets: map[zodiac.Body]transit.Position{
			zodiac.Sun: {Position: zodiac.ClassifySign(70.5), Speed: 0.9578},
		},
	}, nil)

	rec := s.do(http.MethodGet, "/transits/now", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	body := testutil.DecodeJSON[map[string]any](s.T(), rec)
	s.Equal("2024-06-01T00:00:00Z", body["date"])
	s.Contains(body["planets"], "Sun")
}

func (s *HandlerSuite) TestTransitsNowFailure() {
	s.transits.EXPECT().Snapshot(gomock.Any()).Return(nil, errors.New("down"))
	rec := s.do(http.MethodGet, "/transits/now", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"running","engine":"test-ephemeris"}`, rec.Body.String())
}

func (s *HandlerSuite) TestMetricsEndpoint() {
	rec := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/calculate", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *HandlerSuite) TestCORSOriginPattern() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://astro-preview.vercel.app")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal("https://astro-preview.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *HandlerSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal("abc-123", rec.Header().Get("X-Request-ID"))
}
