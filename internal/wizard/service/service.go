// Package service runs the kiosk wizard. Every action loads the session,
// applies a domain transition and saves it back under a per-session lock so
// concurrent requests for one kiosk never interleave.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	customerrepo "dmt_kiosk_backend/internal/customers/repository"
	customersvc "dmt_kiosk_backend/internal/customers/service"
	docrepo "dmt_kiosk_backend/internal/documents/repository"
	docservice "dmt_kiosk_backend/internal/documents/service"
	doctransport "dmt_kiosk_backend/internal/documents/transport"
	"dmt_kiosk_backend/internal/events"
	feedbacktransport "dmt_kiosk_backend/internal/feedback/transport"
	servicerepo "dmt_kiosk_backend/internal/services/repository"
	"dmt_kiosk_backend/internal/wizard/domain"
	"dmt_kiosk_backend/internal/wizard/repository"
	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
)

// CustomerRegistrar creates or updates the customer behind an intake.
type CustomerRegistrar interface {
	Register(ctx context.Context, p customersvc.IntakeParams) (customerrepo.Customer, bool, error)
}

// ServiceOpener opens the service record for a chosen transfer type.
type ServiceOpener interface {
	Open(ctx context.Context, customerID uuid.UUID, serviceType, transferType string) (servicerepo.ServiceRecord, error)
}

// DocumentRecorder stores the checklist and scanned files.
type DocumentRecorder interface {
	ConfirmChecklist(ctx context.Context, customerID uuid.UUID, docs []int) ([]docrepo.Document, error)
	AttachFile(ctx context.Context, up docservice.Upload) (doctransport.DocumentResponse, error)
}

// FeedbackSubmitter stores end-of-visit feedback.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, req feedbacktransport.SubmitFeedbackRequest) (feedbacktransport.FeedbackResponse, error)
}

// Outcome is the session after an action and where the client goes next.
// Next is empty when the action does not navigate.
type Outcome struct {
	Session *domain.Session
	Next    string
}

// Service coordinates wizard sessions with the persistence modules.
type Service struct {
	store     repository.SessionStore
	bus       events.Bus
	customers CustomerRegistrar
	services  ServiceOpener
	documents DocumentRecorder
	feedback  FeedbackSubmitter
	locks     *sessionLocks
	now       func() time.Time
	log       *logger.Logger
}

// New creates a wizard service. The persistence collaborators are injected
// with the Set methods once their modules exist.
func New(store repository.SessionStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store: store,
		bus:   bus,
		locks: newSessionLocks(),
		now:   time.Now,
		log:   log,
	}
}

func (s *Service) SetCustomerRegistrar(r CustomerRegistrar) { s.customers = r }
func (s *Service) SetServiceOpener(o ServiceOpener)         { s.services = o }
func (s *Service) SetDocumentRecorder(d DocumentRecorder)   { s.documents = d }
func (s *Service) SetFeedbackSubmitter(f FeedbackSubmitter) { s.feedback = f }

// Now is the clock used for every transition.
func (s *Service) Now() time.Time {
	return s.now()
}

// Create opens a fresh session in lang.
func (s *Service) Create(ctx context.Context, lang domain.Language) (*domain.Session, error) {
	session := domain.NewSession(uuid.New(), lang, s.now())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("wizard session created", "sessionId", session.ID, "language", session.State.Language)
	return session, nil
}

// Get loads a session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, found, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("wizard session not found")
	}
	return session, nil
}

// SetLanguage switches the display language.
func (s *Service) SetLanguage(ctx context.Context, id uuid.UUID, code string) (*domain.Session, error) {
	return s.mutate(ctx, id, func(session *domain.Session) error {
		return session.SetLanguage(code, s.now())
	})
}

// ToggleTheme flips light and dark.
func (s *Service) ToggleTheme(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.mutate(ctx, id, func(session *domain.Session) error {
		session.ToggleTheme(s.now())
		return nil
	})
}

// PatchCustomer merges form fields without validating them.
func (s *Service) PatchCustomer(ctx context.Context, id uuid.UUID, patch domain.CustomerPatch) (*domain.Session, error) {
	return s.mutate(ctx, id, func(session *domain.Session) error {
		session.UpdateCustomerDetails(patch, s.now())
		return nil
	})
}

// StartStep records a start for step unless it already has one.
func (s *Service) StartStep(ctx context.Context, id uuid.UUID, step int) (*domain.Session, error) {
	if step < domain.FirstStep {
		return nil, apperr.Validation(fmt.Sprintf("invalid step %d", step))
	}
	return s.mutate(ctx, id, func(session *domain.Session) error {
		session.StartStep(step, s.now())
		return nil
	})
}

// CompleteStep closes step, opens the next one and publishes StepCompleted
// once the session is saved. Completing the terminal step sends the client
// to feedback.
func (s *Service) CompleteStep(ctx context.Context, id uuid.UUID, step int) (Outcome, error) {
	return s.complete(ctx, id, func(*domain.Session) int { return step })
}

// CompleteCurrent completes whatever step the session is on when the lock is
// taken.
func (s *Service) CompleteCurrent(ctx context.Context, id uuid.UUID) (Outcome, error) {
	return s.complete(ctx, id, func(session *domain.Session) int { return session.State.CurrentStep })
}

// complete publishes at most one StepCompleted per step: a repeat of an
// already closed step changes nothing and publishes nothing.
func (s *Service) complete(ctx context.Context, id uuid.UUID, pick func(*domain.Session) int) (Outcome, error) {
	var closed domain.StepTiming
	var publish bool
	var step int

	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		step = pick(session)
		timing, err := session.CompleteStep(step, s.now())
		switch {
		case errors.Is(err, domain.ErrStepNotStarted):
			s.log.WithContext(ctx).Warn("completed a step that was never started", "sessionId", session.ID, "step", step)
		case errors.Is(err, domain.ErrStepAlreadyCompleted):
			s.log.WithContext(ctx).Debug("step already completed", "sessionId", session.ID, "step", step)
		case err != nil:
			return err
		default:
			closed, publish = timing, true
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if publish {
		s.publishStepCompleted(ctx, session, closed)
	}

	next := domain.RouteStepConfirmation
	if step >= domain.TerminalStep {
		next = domain.RouteFeedback
	}
	return Outcome{Session: session, Next: next}, nil
}

// Elapsed returns the current step and its running time.
func (s *Service) Elapsed(ctx context.Context, id uuid.UUID) (int, time.Duration, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return session.State.CurrentStep, session.Elapsed(s.now()), nil
}

// IntakeParams is the validated customer information form.
type IntakeParams struct {
	VehicleNumber string
	FullName      string
	ContactNumber string
	ServiceType   domain.ServiceType
}

// Intake saves the customer form and registers the customer, matching an
// existing record by phone number.
func (s *Service) Intake(ctx context.Context, id uuid.UUID, p IntakeParams) (Outcome, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.UpdateCustomerDetails(domain.CustomerPatch{
			VehicleNumber: &p.VehicleNumber,
			FullName:      &p.FullName,
			ContactNumber: &p.ContactNumber,
			ServiceType:   &p.ServiceType,
		}, s.now())

		customer, created, err := s.customers.Register(ctx, customersvc.IntakeParams{
			FullName:      p.FullName,
			ContactNumber: p.ContactNumber,
			VehicleNumber: p.VehicleNumber,
		})
		if err != nil {
			return err
		}
		if session.CustomerID == nil || *session.CustomerID != customer.ID {
			session.DocumentsConfirmed = false
		}
		session.CustomerID = &customer.ID

		s.log.WithContext(ctx).Info("intake submitted", "sessionId", session.ID, "customerId", customer.ID, "newCustomer", created)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Session: session, Next: domain.RouteServiceSelection}, nil
}

// SelectTransferType opens the service record for an enabled transfer type.
func (s *Service) SelectTransferType(ctx context.Context, id uuid.UUID, key string) (Outcome, error) {
	option, ok := domain.LookupTransferType(key)
	if !ok {
		return Outcome{}, apperr.Validation("unknown transfer type: " + key)
	}
	if !option.Enabled {
		return Outcome{}, apperr.Validation("transfer type is not available: " + key)
	}

	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		if session.CustomerID == nil {
			return apperr.Precondition("customer details have not been submitted")
		}

		serviceType := session.Customer.ServiceType
		if serviceType == "" {
			serviceType = domain.ServiceNormal
		}

		record, err := s.services.Open(ctx, *session.CustomerID, string(serviceType), option.Key)
		if err != nil {
			return err
		}
		session.ServiceID = &record.ID
		session.DocumentsConfirmed = false
		session.UpdateCustomerDetails(domain.CustomerPatch{TransferType: &option.Key}, s.now())
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Session: session, Next: domain.RouteDocuments}, nil
}

// ToggleChecklist ticks or unticks one required document.
func (s *Service) ToggleChecklist(ctx context.Context, id uuid.UUID, doc int) (*domain.Session, error) {
	return s.mutate(ctx, id, func(session *domain.Session) error {
		if _, err := session.Checklist.Toggle(doc); err != nil {
			return err
		}
		session.UpdatedAt = s.now()
		return nil
	})
}

// ConfirmDocuments records the ticked checklist and starts the current step.
// The checklist is recorded once per customer and service record; coming back
// to the page and confirming again only moves on.
func (s *Service) ConfirmDocuments(ctx context.Context, id uuid.UUID) (Outcome, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		if session.CustomerID == nil {
			return apperr.Precondition("customer details have not been submitted")
		}
		if !session.Checklist.AllChecked() {
			return apperr.Precondition(fmt.Sprintf("all %d documents must be checked", domain.ChecklistSize)).
				WithDetails(map[string]int{"checked": session.Checklist.Checked(), "required": domain.ChecklistSize})
		}

		if !session.DocumentsConfirmed {
			docs := make([]int, domain.ChecklistSize)
			for i := range docs {
				docs[i] = i + 1
			}
			if _, err := s.documents.ConfirmChecklist(ctx, *session.CustomerID, docs); err != nil {
				return err
			}
			session.DocumentsConfirmed = true
		}

		session.StartStep(session.State.CurrentStep, s.now())
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Session: session, Next: domain.RouteStepConfirmation}, nil
}

// DocumentFile is a scan posted from the documents page.
type DocumentFile struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadDocument stores a scan of checklist document doc for the session's
// customer. The session itself is not changed.
func (s *Service) UploadDocument(ctx context.Context, id uuid.UUID, doc int, file DocumentFile) (doctransport.DocumentResponse, error) {
	if doc < 1 || doc > domain.ChecklistSize {
		return doctransport.DocumentResponse{}, apperr.Validation(fmt.Sprintf("document must be between 1 and %d", domain.ChecklistSize))
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return doctransport.DocumentResponse{}, err
	}
	if session.CustomerID == nil {
		return doctransport.DocumentResponse{}, apperr.Precondition("customer details have not been submitted")
	}

	return s.documents.AttachFile(ctx, docservice.Upload{
		CustomerID:  *session.CustomerID,
		Document:    doc,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Size:        file.Size,
		Body:        file.Body,
	})
}

// SubmitFeedback stores the rating against the session's customer, if any,
// and ends the session so the kiosk starts over.
func (s *Service) SubmitFeedback(ctx context.Context, id uuid.UUID, rating feedbacktransport.Rating, message *string) (feedbacktransport.FeedbackResponse, string, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, found, err := s.store.Find(ctx, id)
	if err != nil {
		return feedbacktransport.FeedbackResponse{}, "", err
	}
	if !found {
		return feedbacktransport.FeedbackResponse{}, "", apperr.NotFound("wizard session not found")
	}

	result, err := s.feedback.Submit(ctx, feedbacktransport.SubmitFeedbackRequest{
		CustomerID: session.CustomerID,
		Rating:     rating,
		Message:    message,
	})
	if err != nil {
		return feedbacktransport.FeedbackResponse{}, "", err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.WithContext(ctx).Warn("failed to end wizard session", "sessionId", id, "error", err)
	}
	return result, domain.RouteCustomerInfo, nil
}

// mutate runs fn on the stored session and saves the result. When fn fails
// nothing is saved.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, found, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("wizard session not found")
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) publishStepCompleted(ctx context.Context, session *domain.Session, timing domain.StepTiming) {
	if s.bus == nil || session.CustomerID == nil || timing.EndTime == nil {
		return
	}

	name := fmt.Sprintf("step%d", timing.StepID)
	if def, ok := domain.StepByID(timing.StepID); ok {
		name = def.Name
	}

	s.bus.Publish(ctx, events.NewStepCompleted(
		session.ID,
		*session.CustomerID,
		session.ServiceID,
		timing.StepID,
		name,
		timing.StartTime,
		*timing.EndTime,
	))
}
