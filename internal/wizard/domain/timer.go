package domain

import (
	"context"
	"sync"
	"time"
)

// Tick reports the running time of the tracked step.
type Tick struct {
	StepID  int
	Elapsed time.Duration
}

// StepTimer emits a Tick per interval for exactly one step. Tracking another
// step replaces the running ticker; the old one has fully stopped by the time
// Track returns.
type StepTimer struct {
	interval time.Duration
	now      func() time.Time
	ticks    chan Tick

	mu      sync.Mutex
	stepID  int
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewStepTimer creates an idle timer. now defaults to time.Now.
func NewStepTimer(interval time.Duration, now func() time.Time) *StepTimer {
	if now == nil {
		now = time.Now
	}
	return &StepTimer{
		interval: interval,
		now:      now,
		ticks:    make(chan Tick),
	}
}

// C delivers ticks. It is closed by Stop.
func (t *StepTimer) C() <-chan Tick {
	return t.ticks
}

// StepID is the step currently tracked, 0 when idle.
func (t *StepTimer) StepID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepID
}

// Track starts ticking for stepID measured from start. Re-tracking the same
// step is a no-op.
func (t *StepTimer) Track(stepID int, start time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || (t.cancel != nil && t.stepID == stepID) {
		return
	}
	t.haltLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t.stepID = stepID
	t.cancel = cancel
	t.done = done

	go t.run(ctx, done, stepID, start)
}

// Idle halts the running ticker without closing C.
func (t *StepTimer) Idle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.haltLocked()
}

// Stop halts the ticker and closes C. Safe to call more than once.
func (t *StepTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.haltLocked()
	t.stopped = true
	close(t.ticks)
}

func (t *StepTimer) haltLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
	t.stepID = 0
}

func (t *StepTimer) run(ctx context.Context, done chan struct{}, stepID int, start time.Time) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick := Tick{StepID: stepID, Elapsed: t.now().Sub(start)}
			select {
			case t.ticks <- tick:
			case <-ctx.Done():
				return
			}
		}
	}
}
