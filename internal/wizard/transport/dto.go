package transport

import (
	"time"

	feedbacktransport "dmt_kiosk_backend/internal/feedback/transport"
	"dmt_kiosk_backend/internal/wizard/domain"
)

// CreateSessionRequest opens a session. Language falls back to the
// Accept-Language header.
type CreateSessionRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en si ta"`
}

type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en si ta"`
}

// IntakeRequest is the customer information form.
type IntakeRequest struct {
	VehicleNumber string `json:"vehicleNumber" validate:"required,min=2,max=20"`
	FullName      string `json:"fullName" validate:"required,min=2,max=100"`
	ContactNumber string `json:"contactNumber" validate:"required,contactnumber"`
	ServiceType   string `json:"serviceType" validate:"required,oneof=one_day normal"`
}

type TransferTypeRequest struct {
	TransferType string `json:"transferType" validate:"required"`
}

// FeedbackRequest rates the visit. Rating accepts a face name or 1..5.
type FeedbackRequest struct {
	Rating  feedbacktransport.Rating `json:"rating" validate:"min=1,max=5"`
	Message *string                  `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// SessionResponse is a session plus values derived from it.
type SessionResponse struct {
	Session        *domain.Session `json:"session"`
	Elapsed        string          `json:"elapsed"`
	ElapsedSeconds int64           `json:"elapsedSeconds"`
	CheckedCount   int             `json:"checkedCount"`
	CanContinue    bool            `json:"canContinue"`
	Finished       bool            `json:"finished"`
}

// FlowResponse is returned by actions that navigate.
type FlowResponse struct {
	SessionResponse
	Next string `json:"next,omitempty"`
}

// ElapsedResponse is also the payload of the "elapsed" stream event.
type ElapsedResponse struct {
	StepID         int    `json:"stepId"`
	Elapsed        string `json:"elapsed"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
}

type FeedbackResponse struct {
	Feedback feedbacktransport.FeedbackResponse `json:"feedback"`
	Next     string                             `json:"next"`
}

type StepsResponse struct {
	Steps []domain.StepDefinition `json:"steps"`
}

type TransferTypesResponse struct {
	TransferTypes []domain.TransferType `json:"transferTypes"`
}

type ChecklistResponse struct {
	SessionResponse
	Document int  `json:"document"`
	Checked  bool `json:"checked"`
}

// NewSessionResponse derives the display values at now.
func NewSessionResponse(s *domain.Session, now time.Time) SessionResponse {
	elapsed := s.Elapsed(now)
	return SessionResponse{
		Session:        s,
		Elapsed:        domain.FormatElapsed(elapsed),
		ElapsedSeconds: int64(elapsed / time.Second),
		CheckedCount:   s.Checklist.Checked(),
		CanContinue:    s.Checklist.AllChecked(),
		Finished:       s.Finished(),
	}
}

func NewElapsedResponse(stepID int, elapsed time.Duration) ElapsedResponse {
	if elapsed < 0 {
		elapsed = 0
	}
	return ElapsedResponse{
		StepID:         stepID,
		Elapsed:        domain.FormatElapsed(elapsed),
		ElapsedSeconds: int64(elapsed / time.Second),
	}
}
