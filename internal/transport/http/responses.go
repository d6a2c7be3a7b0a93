package httptransport

import (
	"astroengine/internal/aspect"
	"astroengine/internal/chart"
	"astroengine/internal/dasha"
)

// CalculateResponse is the POST /calculate result.
type CalculateResponse struct {
	Success        bool                   `json:"success"`
	Chart          *chart.NatalChart      `json:"chart"`
	Dasha          dasha.Timeline         `json:"dasha"`
	ActiveTransits []aspect.TransitRecord `json:"active_transits"`
}

// HealthResponse is the GET /health result.
type HealthResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
}
