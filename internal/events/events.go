// Package events declares the kiosk domain events and re-exports the platform
// bus so modules import a single package.
package events

import (
	"time"

	platformevents "dmt_kiosk_backend/platform/events"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
)

type (
	Event       = platformevents.Event
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	InMemoryBus = platformevents.InMemoryBus
)

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// StepCompleted is raised when a customer confirms a processing step.
type StepCompleted struct {
	platformevents.BaseEvent
	SessionID  uuid.UUID  `json:"sessionId"`
	CustomerID uuid.UUID  `json:"customerId"`
	ServiceID  *uuid.UUID `json:"serviceId,omitempty"`
	StepID     int        `json:"stepId"`
	StepName   string     `json:"stepName"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    time.Time  `json:"endedAt"`
}

// EventName implements Event.
func (StepCompleted) EventName() string { return "wizard.step_completed" }

// NewStepCompleted stamps the event with its end time.
func NewStepCompleted(sessionID, customerID uuid.UUID, serviceID *uuid.UUID, stepID int, stepName string, startedAt, endedAt time.Time) StepCompleted {
	return StepCompleted{
		BaseEvent:  platformevents.NewBaseEvent(endedAt),
		SessionID:  sessionID,
		CustomerID: customerID,
		ServiceID:  serviceID,
		StepID:     stepID,
		StepName:   stepName,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
	}
}
