// Package domain holds the kiosk wizard state and its transitions. Nothing in
// here performs I/O; callers load a Session, mutate it and save it back.
package domain

import (
	"errors"
	"fmt"
	"time"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
)

// ErrStepNotStarted is returned by CompleteStep when the step has no timing.
// The transition still happens; callers log it and move on.
var ErrStepNotStarted = errors.New("step was never started")

// ErrStepAlreadyCompleted is returned by CompleteStep when the step already
// has an end time. The session is left untouched.
var ErrStepAlreadyCompleted = errors.New("step already completed")

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSinhala Language = "si"
	LanguageTamil   Language = "ta"
)

// ParseLanguage accepts only the three supported codes.
func ParseLanguage(code string) (Language, error) {
	switch Language(code) {
	case LanguageEnglish, LanguageSinhala, LanguageTamil:
		return Language(code), nil
	}
	return "", apperr.Validation("unsupported language: " + code)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ServiceType is the speed of service chosen at intake.
type ServiceType string

const (
	ServiceOneDay ServiceType = "one_day"
	ServiceNormal ServiceType = "normal"
)

// CustomerDetails is the intake form as it fills in across pages.
type CustomerDetails struct {
	VehicleNumber string      `json:"vehicleNumber"`
	FullName      string      `json:"fullName"`
	ContactNumber string      `json:"contactNumber"`
	ServiceType   ServiceType `json:"serviceType"`
	TransferType  string      `json:"transferType"`
}

// CustomerPatch is a partial update; nil fields are left alone.
type CustomerPatch struct {
	VehicleNumber *string      `json:"vehicleNumber,omitempty"`
	FullName      *string      `json:"fullName,omitempty"`
	ContactNumber *string      `json:"contactNumber,omitempty"`
	ServiceType   *ServiceType `json:"serviceType,omitempty"`
	TransferType  *string      `json:"transferType,omitempty"`
}

// StepTiming records when a step was started and, once done, ended.
type StepTiming struct {
	StepID    int        `json:"stepId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// Duration is end minus start, or zero while the step is open.
func (t StepTiming) Duration() time.Duration {
	if t.EndTime == nil {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}

// State is the navigation-independent part of a kiosk session.
type State struct {
	CurrentStep int          `json:"currentStep"`
	Timings     []StepTiming `json:"stepTimings"`
	Language    Language     `json:"language"`
	Theme       Theme        `json:"theme"`
}

// Session is one customer's pass through the kiosk.
type Session struct {
	ID         uuid.UUID       `json:"id"`
	State      State           `json:"state"`
	Customer   CustomerDetails `json:"customerDetails"`
	CustomerID *uuid.UUID      `json:"customerId"`
	ServiceID  *uuid.UUID      `json:"serviceId"`
	Checklist  Checklist       `json:"checklist"`

	// DocumentsConfirmed is set once the checklist has been recorded for the
	// current customer and service record.
	DocumentsConfirmed bool      `json:"documentsConfirmed"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewSession starts at step 1 with no timings and the light theme.
func NewSession(id uuid.UUID, lang Language, now time.Time) *Session {
	if lang == "" {
		lang = LanguageEnglish
	}
	return &Session{
		ID: id,
		State: State{
			CurrentStep: FirstStep,
			Timings:     []StepTiming{},
			Language:    lang,
			Theme:       ThemeLight,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetLanguage switches the display language.
func (s *Session) SetLanguage(code string, now time.Time) error {
	lang, err := ParseLanguage(code)
	if err != nil {
		return err
	}
	s.State.Language = lang
	s.UpdatedAt = now
	return nil
}

// ToggleTheme flips light and dark and returns the new theme.
func (s *Session) ToggleTheme(now time.Time) Theme {
	if s.State.Theme == ThemeDark {
		s.State.Theme = ThemeLight
	} else {
		s.State.Theme = ThemeDark
	}
	s.UpdatedAt = now
	return s.State.Theme
}

// UpdateCustomerDetails merges the non-nil fields of patch.
func (s *Session) UpdateCustomerDetails(patch CustomerPatch, now time.Time) {
	if patch.VehicleNumber != nil {
		s.Customer.VehicleNumber = *patch.VehicleNumber
	}
	if patch.FullName != nil {
		s.Customer.FullName = *patch.FullName
	}
	if patch.ContactNumber != nil {
		s.Customer.ContactNumber = *patch.ContactNumber
	}
	if patch.ServiceType != nil {
		s.Customer.ServiceType = *patch.ServiceType
	}
	if patch.TransferType != nil {
		s.Customer.TransferType = *patch.TransferType
	}
	s.UpdatedAt = now
}

// Timing returns the timing for stepID, if the step was started.
func (s *Session) Timing(stepID int) (StepTiming, bool) {
	if i := s.timingIndex(stepID); i >= 0 {
		return s.State.Timings[i], true
	}
	return StepTiming{}, false
}

// StartStep records a start time for stepID. A step is started at most once;
// later calls keep the original start and report false.
func (s *Session) StartStep(stepID int, now time.Time) bool {
	if s.timingIndex(stepID) >= 0 {
		return false
	}
	s.State.Timings = append(s.State.Timings, StepTiming{StepID: stepID, StartTime: now})
	s.UpdatedAt = now
	return true
}

// CompleteStep closes stepID, advances to stepID+1 and starts it. When stepID
// was never started the timings are left as they are and ErrStepNotStarted is
// returned alongside the advance. A step that already ended keeps its end
// time and ErrStepAlreadyCompleted is returned without any change.
func (s *Session) CompleteStep(stepID int, now time.Time) (StepTiming, error) {
	if stepID < FirstStep {
		return StepTiming{}, apperr.Validation(fmt.Sprintf("invalid step %d", stepID))
	}

	var closed StepTiming
	var err error
	if i := s.timingIndex(stepID); i >= 0 {
		if s.State.Timings[i].EndTime != nil {
			return s.State.Timings[i], ErrStepAlreadyCompleted
		}
		end := now
		s.State.Timings[i].EndTime = &end
		closed = s.State.Timings[i]
	} else {
		err = ErrStepNotStarted
	}

	s.State.CurrentStep = stepID + 1
	s.StartStep(stepID+1, now)
	s.UpdatedAt = now
	return closed, err
}

// Elapsed is the running time of the current step, or zero when it is not
// open.
func (s *Session) Elapsed(now time.Time) time.Duration {
	t, ok := s.Timing(s.State.CurrentStep)
	if !ok || t.EndTime != nil {
		return 0
	}
	if d := now.Sub(t.StartTime); d > 0 {
		return d
	}
	return 0
}

// Finished reports whether the terminal step has been completed.
func (s *Session) Finished() bool {
	return s.State.CurrentStep > TerminalStep
}

func (s *Session) timingIndex(stepID int) int {
	for i := range s.State.Timings {
		if s.State.Timings[i].StepID == stepID {
			return i
		}
	}
	return -1
}

// FormatElapsed renders d as m:ss, with minutes unbounded.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
