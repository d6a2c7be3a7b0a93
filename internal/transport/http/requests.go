package httptransport

import (
	"strings"

	"astroengine/internal/chart"
)

// CalculateRequest is the POST /calculate body. Second defaults to zero.
type CalculateRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Second *int   `json:"second,omitempty"`
	Place  string `json:"place"`
}

// Validate trims the place and checks the birth moment.
func (r *CalculateRequest) Validate() error {
	r.Place = strings.TrimSpace(r.Place)
	return r.ToChartRequest().Validate()
}

// ToChartRequest converts the body to a service request.
func (r *CalculateRequest) ToChartRequest() chart.Request {
	second := 0
	if r.Second != nil {
		second = *r.Second
	}
	return chart.Request{
		Year:   r.Year,
		Month:  r.Month,
		Day:    r.Day,
		Hour:   r.Hour,
		Minute: r.Minute,
		Second: second,
		Place:  r.Place,
	}
}
