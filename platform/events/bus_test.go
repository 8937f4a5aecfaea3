package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"dmt_kiosk_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.happened" }

func TestInMemoryBusPublishRunsHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32
	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error {
		calls.Add(1)
		return nil
	}))
	bus.Subscribe("other", HandlerFunc(func(context.Context, Event) error {
		t.Error("handler for another event must not run")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(time.Now())})
	bus.Wait()

	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestInMemoryBusPublishDetachesCancellation(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var sawCancel atomic.Bool
	bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, _ Event) error {
		time.Sleep(10 * time.Millisecond)
		sawCancel.Store(ctx.Err() != nil)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, testEvent{NewBaseEvent(time.Now())})
	cancel()
	bus.Wait()

	if sawCancel.Load() {
		t.Fatal("handler context was canceled with the publisher's context")
	}
}

func TestInMemoryBusPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	errA := errors.New("a")
	errB := errors.New("b")
	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error { return errA }))
	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error { return errB }))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(time.Now())})
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("err = %v, want both handler errors", err)
	}
}
