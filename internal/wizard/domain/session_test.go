package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestSession() *Session {
	return NewSession(uuid.New(), LanguageEnglish, t0)
}

func TestNewSession(t *testing.T) {
	s := newTestSession()
	if s.State.CurrentStep != 1 || len(s.State.Timings) != 0 {
		t.Fatalf("state = %+v", s.State)
	}
	if s.State.Theme != ThemeLight || s.State.Language != LanguageEnglish {
		t.Fatalf("theme/lang = %s/%s", s.State.Theme, s.State.Language)
	}
}

func TestCompleteSequenceFromStepOne(t *testing.T) {
	for n := 1; n <= TerminalStep; n++ {
		s := newTestSession()
		now := t0
		s.StartStep(1, now)
		for k := 1; k <= n; k++ {
			now = now.Add(time.Minute)
			if _, err := s.CompleteStep(k, now); err != nil {
				t.Fatalf("n=%d CompleteStep(%d): %v", n, k, err)
			}
		}

		if s.State.CurrentStep != n+1 {
			t.Fatalf("n=%d currentStep = %d", n, s.State.CurrentStep)
		}
		if len(s.State.Timings) != n+1 {
			t.Fatalf("n=%d timings = %d", n, len(s.State.Timings))
		}
		for i, timing := range s.State.Timings {
			if timing.StepID != i+1 {
				t.Errorf("n=%d timings[%d].StepID = %d", n, i, timing.StepID)
			}
			open := timing.EndTime == nil
			if wantOpen := i == n; open != wantOpen {
				t.Errorf("n=%d step %d open = %v, want %v", n, timing.StepID, open, wantOpen)
			}
		}
	}
}

func TestStartStepIsIdempotent(t *testing.T) {
	s := newTestSession()
	if !s.StartStep(2, t0) {
		t.Fatal("first StartStep should record")
	}
	if s.StartStep(2, t0.Add(time.Hour)) {
		t.Fatal("second StartStep should not record")
	}

	if len(s.State.Timings) != 1 {
		t.Fatalf("timings = %d, want 1", len(s.State.Timings))
	}
	if !s.State.Timings[0].StartTime.Equal(t0) {
		t.Fatalf("start = %v, want original %v", s.State.Timings[0].StartTime, t0)
	}
}

func TestCompleteStepNotStartedStillAdvances(t *testing.T) {
	s := newTestSession()
	_, err := s.CompleteStep(1, t0)
	if !errors.Is(err, ErrStepNotStarted) {
		t.Fatalf("err = %v, want ErrStepNotStarted", err)
	}
	if s.State.CurrentStep != 2 {
		t.Fatalf("currentStep = %d, want 2", s.State.CurrentStep)
	}
	if len(s.State.Timings) != 1 || s.State.Timings[0].StepID != 2 {
		t.Fatalf("timings = %+v, want only step 2", s.State.Timings)
	}
}

func TestCompleteStepTwiceKeepsFirstEnd(t *testing.T) {
	s := newTestSession()
	s.StartStep(1, t0)
	first := t0.Add(time.Minute)
	if _, err := s.CompleteStep(1, first); err != nil {
		t.Fatalf("first CompleteStep: %v", err)
	}
	s.StartStep(3, first)
	s.State.CurrentStep = 3

	timing, err := s.CompleteStep(1, t0.Add(5*time.Minute))
	if !errors.Is(err, ErrStepAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrStepAlreadyCompleted", err)
	}
	if !timing.EndTime.Equal(first) {
		t.Fatalf("end = %v, want %v", timing.EndTime, first)
	}
	if s.State.CurrentStep != 3 {
		t.Fatalf("currentStep = %d, want 3", s.State.CurrentStep)
	}
	if got, _ := s.Timing(1); !got.EndTime.Equal(first) {
		t.Fatalf("stored end = %v, want %v", got.EndTime, first)
	}
}

func TestCompleteStepRejectsInvalidID(t *testing.T) {
	s := newTestSession()
	_, err := s.CompleteStep(0, t0)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if s.State.CurrentStep != 1 {
		t.Fatal("state must not change")
	}
}

func TestCompletingTerminalStepStartsHiddenStep(t *testing.T) {
	s := newTestSession()
	s.State.CurrentStep = TerminalStep
	s.StartStep(TerminalStep, t0)

	if _, err := s.CompleteStep(TerminalStep, t0.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if !s.Finished() {
		t.Fatal("session should be finished")
	}
	if _, ok := s.Timing(TerminalStep + 1); !ok {
		t.Fatal("hidden step should be started")
	}
	if _, ok := StepByID(TerminalStep + 1); ok {
		t.Fatal("hidden step must not be in the step table")
	}
}

func TestUpdateCustomerDetailsCommutes(t *testing.T) {
	vehicle := "WP CAB-1234"
	name := "Nimal Perera"
	phone := "0771234567"
	oneDay := ServiceOneDay

	a := CustomerPatch{VehicleNumber: &vehicle, ContactNumber: &phone}
	b := CustomerPatch{FullName: &name, ServiceType: &oneDay}

	s1 := newTestSession()
	s1.UpdateCustomerDetails(a, t0)
	s1.UpdateCustomerDetails(b, t0)

	s2 := newTestSession()
	s2.UpdateCustomerDetails(b, t0)
	s2.UpdateCustomerDetails(a, t0)

	if !reflect.DeepEqual(s1.Customer, s2.Customer) {
		t.Fatalf("%+v != %+v", s1.Customer, s2.Customer)
	}
	if s1.Customer.TransferType != "" {
		t.Fatal("untouched field changed")
	}
}

func TestUpdateCustomerDetailsOverwritesOnlyGivenFields(t *testing.T) {
	s := newTestSession()
	first, second := "A", "B"
	num := "0771234567"
	s.UpdateCustomerDetails(CustomerPatch{FullName: &first, ContactNumber: &num}, t0)
	s.UpdateCustomerDetails(CustomerPatch{FullName: &second}, t0)

	if s.Customer.FullName != "B" || s.Customer.ContactNumber != num {
		t.Fatalf("customer = %+v", s.Customer)
	}
}

func TestToggleTheme(t *testing.T) {
	s := newTestSession()
	if got := s.ToggleTheme(t0); got != ThemeDark {
		t.Fatalf("toggle 1 = %s", got)
	}
	if got := s.ToggleTheme(t0); got != ThemeLight {
		t.Fatalf("toggle 2 = %s", got)
	}
}

func TestSetLanguage(t *testing.T) {
	s := newTestSession()
	if err := s.SetLanguage("ta", t0); err != nil || s.State.Language != LanguageTamil {
		t.Fatalf("SetLanguage(ta) = %v, lang %s", err, s.State.Language)
	}
	if err := s.SetLanguage("fr", t0); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("SetLanguage(fr) = %v", err)
	}
	if s.State.Language != LanguageTamil {
		t.Fatal("rejected language must not change state")
	}
}

func TestElapsed(t *testing.T) {
	s := newTestSession()
	if got := s.Elapsed(t0); got != 0 {
		t.Fatalf("no timing: elapsed = %v", got)
	}

	s.StartStep(1, t0)
	if got := s.Elapsed(t0.Add(75 * time.Second)); got != 75*time.Second {
		t.Fatalf("open step: elapsed = %v", got)
	}

	s.State.Timings[0].EndTime = &t0
	if got := s.Elapsed(t0.Add(time.Hour)); got != 0 {
		t.Fatalf("closed step: elapsed = %v", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{75 * time.Second, "1:15"},
		{10*time.Minute + 999*time.Millisecond, "10:00"},
		{125 * time.Minute, "125:00"},
		{-time.Second, "0:00"},
	}
	for _, tc := range cases {
		if got := FormatElapsed(tc.d); got != tc.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
