package book

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/guastuci/Gerenciador-de-livraria/pkg/circuitbreaker"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/metrics"
)

// Catalog event routing keys
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// BookEvent is the payload published after a successful mutation.
// Book is omitted for deletions.
type BookEvent struct {
	Type       string        `json:"type"`
	BookID     string        `json:"bookId"`
	Book       *BookResponse `json:"book,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// EventPublisher sends a message to the catalog exchange.
// *mq.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// NoopPublisher drops every event. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Events publishes catalog events on behalf of the use cases.
// Design notes:
// 1. Events go out after the store accepted the write
// 2. A failed publish is logged and counted, it never fails the request
// 3. The publish runs in-line on the caller's goroutine; it outlives request
//    cancellation but is bounded by timeout, so a slow broker adds at most
//    timeout to a mutation
// 4. An open breaker skips the broker entirely so requests do not wait on it
type Events struct {
	publisher EventPublisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
	now       func() time.Time
}

// NewEvents creates the event emitter. A nil publisher disables events;
// breaker may be nil.
func NewEvents(publisher EventPublisher, timeout time.Duration, breaker *circuitbreaker.CircuitBreaker) *Events {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Events{
		publisher: publisher,
		breaker:   breaker,
		timeout:   timeout,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (e *Events) emit(ctx context.Context, routingKey string, id uuid.UUID, payload *BookResponse) {
	if _, noop := e.publisher.(NoopPublisher); noop {
		return
	}

	event := BookEvent{
		Type:       routingKey,
		BookID:     id.String(),
		Book:       payload,
		OccurredAt: e.now(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	publish := func(ctx context.Context) error {
		return e.publisher.Publish(ctx, routingKey, event)
	}

	var err error
	if e.breaker != nil {
		err = e.breaker.Execute(pubCtx, publish)
	} else {
		err = publish(pubCtx)
	}

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "skipped"
		zerolog.Ctx(ctx).Debug().Str("routing_key", routingKey).Msg("event broker circuit open, event skipped")
	case err != nil:
		result = "error"
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("routing_key", routingKey).
			Str("book_id", event.BookID).
			Msg("catalog event not published")
	}

	metrics.InitMetrics()
	metrics.IncCounterVec(metrics.CatalogEventsPublishedTotal, prometheus.Labels{
		"routing_key": routingKey,
		"result":      result,
	})
}
