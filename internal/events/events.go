// Package events publishes chart lifecycle events. Publishing is best
// effort: a failed or dropped event never fails the request that caused it.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"astroengine/internal/chart"
	"astroengine/internal/zodiac"
	"astroengine/pkg/requestcontext"
)

// ChartComputed is emitted after a natal chart is returned to a caller.
type ChartComputed struct {
	EventID    string      `json:"event_id"`
	ComputedAt time.Time   `json:"computed_at"`
	Place      string      `json:"place"`
	SunSign    zodiac.Sign `json:"sun_sign"`
	MoonSign   zodiac.Sign `json:"moon_sign"`
	RisingSign zodiac.Sign `json:"rising_sign"`
	RequestID  string      `json:"request_id,omitempty"`
}

// NewChartComputed builds the event for c, stamped with the request clock.
func NewChartComputed(ctx context.Context, c *chart.NatalChart) ChartComputed {
	return ChartComputed{
		EventID:    uuid.NewString(),
		ComputedAt: requestcontext.Now(ctx).UTC(),
		Place:      c.BirthData.Place,
		SunSign:    c.BigThree.Sun.Sign,
		MoonSign:   c.BigThree.Moon.Sign,
		RisingSign: c.BigThree.Rising.Sign,
		RequestID:  requestcontext.RequestID(ctx),
	}
}

// Publisher emits chart events.
type Publisher interface {
	// Publish queues the event and returns immediately.
	Publish(ctx context.Context, event ChartComputed)
	// Close flushes queued events and releases resources.
	Close(ctx context.Context) error
}

// NopPublisher discards every event. It is used when no brokers are
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ChartComputed) {}

func (NopPublisher) Close(context.Context) error { return nil }
