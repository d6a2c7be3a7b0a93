package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"astroengine/pkg/platform/circuit"
)

// producer is the subset of *kgo.Client the publisher uses.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

// KafkaPublisher produces events asynchronously. After repeated delivery
// failures it drops events, letting one through per probe interval until a
// delivery succeeds.
type KafkaPublisher struct {
	producer      producer
	topic         string
	breaker       *circuit.Breaker
	probeInterval time.Duration
	metrics       *Metrics
	logger        *slog.Logger

	mu        sync.Mutex
	lastProbe time.Time
	inflight  sync.WaitGroup
}

// KafkaOption configures a KafkaPublisher.
type KafkaOption func(*KafkaPublisher)

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) KafkaOption {
	return func(p *KafkaPublisher) {
		p.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) KafkaOption {
	return func(p *KafkaPublisher) {
		if b != nil {
			p.breaker = b
		}
	}
}

// WithProbeInterval sets how often an open breaker lets one event through.
func WithProbeInterval(d time.Duration) KafkaOption {
	return func(p *KafkaPublisher) {
		p.probeInterval = d
	}
}

// NewKafkaPublisher connects to brokers, creates topic when it is missing
// and returns a publisher producing to it.
func NewKafkaPublisher(ctx context.Context, brokers []string, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RecordDeliveryTimeout(10*time.Second),
		kgo.ProducerLinger(50*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := EnsureTopic(ctx, kadm.NewClient(client), topic); err != nil {
		client.Close()
		return nil, err
	}
	return newKafkaPublisher(client, topic, opts...), nil
}

func newKafkaPublisher(p producer, topic string, opts ...KafkaOption) *KafkaPublisher {
	pub := &KafkaPublisher{
		producer:      p,
		topic:         topic,
		breaker:       circuit.New("events"),
		probeInterval: 30 * time.Second,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(pub)
	}
	return pub
}

// EnsureTopic creates topic with one partition. An existing topic is not an
// error.
func EnsureTopic(ctx context.Context, admin *kadm.Client, topic string) error {
	resp, err := admin.CreateTopic(ctx, 1, -1, nil, topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

// Publish queues event for delivery. It never blocks on the broker.
func (p *KafkaPublisher) Publish(ctx context.Context, event ChartComputed) {
	if !p.allow() {
		p.metrics.IncOutcome("dropped")
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.metrics.IncOutcome("failed")
		p.logger.ErrorContext(ctx, "encode chart event", "event_id", event.EventID, "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.EventID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte("chart.computed")},
		},
	}

	// The request context ends with the response; delivery must outlive it.
	produceCtx := context.WithoutCancel(ctx)
	p.inflight.Add(1)
	p.producer.Produce(produceCtx, record, func(_ *kgo.Record, err error) {
		defer p.inflight.Done()
		p.delivered(produceCtx, event, err)
	})
}

func (p *KafkaPublisher) delivered(ctx context.Context, event ChartComputed, err error) {
	if err != nil {
		p.metrics.IncOutcome("failed")
		p.logger.WarnContext(ctx, "chart event delivery failed",
			"event_id", event.EventID,
			"request_id", event.RequestID,
			"error", err,
		)
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.mu.Lock()
			p.lastProbe = time.Now()
			p.mu.Unlock()
			p.metrics.SetBreakerOpen(true)
			p.logger.WarnContext(ctx, "event publishing suspended", "breaker", p.breaker.Name())
		}
		return
	}
	p.metrics.IncOutcome("delivered")
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.metrics.SetBreakerOpen(false)
		p.logger.InfoContext(ctx, "event publishing resumed", "breaker", p.breaker.Name())
	}
}

func (p *KafkaPublisher) allow() bool {
	if !p.breaker.IsOpen() {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if time.Since(p.lastProbe) < p.probeInterval {
		return false
	}
	p.lastProbe = time.Now()
	return true
}

// Close flushes buffered records, closes the client and waits for every
// delivery callback. Records still buffered when ctx ends are failed by the
// client on close.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	err := p.producer.Flush(ctx)
	p.producer.Close()
	p.inflight.Wait()
	if err != nil {
		return fmt.Errorf("flush events: %w", err)
	}
	return nil
}
