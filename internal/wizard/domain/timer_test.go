package domain

import (
	"testing"
	"time"
)

func TestStepTimerTicksForTrackedStep(t *testing.T) {
	timer := NewStepTimer(5*time.Millisecond, nil)
	defer timer.Stop()

	start := time.Now().Add(-2 * time.Second)
	timer.Track(1, start)

	select {
	case tick := <-timer.C():
		if tick.StepID != 1 {
			t.Fatalf("tick step = %d", tick.StepID)
		}
		if tick.Elapsed < 2*time.Second {
			t.Fatalf("elapsed = %v, want >= 2s", tick.Elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick")
	}
}

func TestStepTimerRetrackCancelsPrevious(t *testing.T) {
	timer := NewStepTimer(2*time.Millisecond, nil)
	defer timer.Stop()

	timer.Track(1, time.Now())
	<-timer.C()

	timer.Track(2, time.Now())
	if timer.StepID() != 2 {
		t.Fatalf("StepID = %d", timer.StepID())
	}
	for i := 0; i < 5; i++ {
		select {
		case tick := <-timer.C():
			if tick.StepID != 2 {
				t.Fatalf("tick for step %d after re-track", tick.StepID)
			}
		case <-time.After(time.Second):
			t.Fatal("no tick")
		}
	}
}

func TestStepTimerStopClosesChannel(t *testing.T) {
	timer := NewStepTimer(time.Millisecond, nil)
	timer.Track(3, time.Now())
	timer.Stop()
	timer.Stop()

	for range timer.C() {
	}
	timer.Track(4, time.Now())
	if timer.StepID() != 0 {
		t.Fatal("stopped timer must stay idle")
	}
}

func TestStepTimerIdleStopsTicks(t *testing.T) {
	timer := NewStepTimer(2*time.Millisecond, nil)
	defer timer.Stop()

	timer.Track(1, time.Now())
	<-timer.C()
	timer.Idle()
	if timer.StepID() != 0 {
		t.Fatalf("StepID = %d after Idle", timer.StepID())
	}

	select {
	case tick := <-timer.C():
		t.Fatalf("tick for step %d while idle", tick.StepID)
	case <-time.After(20 * time.Millisecond):
	}
}
