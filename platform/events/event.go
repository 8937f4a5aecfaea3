// Package events is the in-process publish/subscribe layer. Modules publish
// facts about finished work (a step closed, a record written) and other
// modules react without importing each other.
// This is part of the platform layer and contains no business logic.
package events

import (
	"context"
	"time"
)

// Event is anything published on the bus. EventName is the subscription key
// and must be stable across releases.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the moment the fact happened, which is not necessarily
// when it was published.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps an event with t. Callers pass their own clock so that
// tests and replays stay deterministic.
func NewBaseEvent(t time.Time) BaseEvent {
	return BaseEvent{Timestamp: t}
}

// Handler reacts to one published event. A returned error is logged by the
// bus and never reaches the publisher of an async Publish.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes events to the handlers subscribed under their name.
type Bus interface {
	// Publish hands the event to every handler in the background. The
	// caller's cancellation does not stop them.
	Publish(ctx context.Context, event Event)

	// PublishSync runs every handler before returning their joined errors.
	PublishSync(ctx context.Context, event Event) error

	Subscribe(eventName string, handler Handler)

	// Wait blocks until handlers started by Publish have returned. It is
	// called once during shutdown after the HTTP server stops.
	Wait()
}
