package service

import (
	"context"
	"errors"
	"sync"
	"testing"
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
	"github.com/stretchr/testify/require"
)

type fakeCollaborators struct {
	mu           sync.Mutex
	customerID   uuid.UUID
	registered   []customersvc.IntakeParams
	opened       []string
	confirmed    [][]int
	uploads      []docservice.Upload
	feedback     []feedbacktransport.SubmitFeedbackRequest
	registerErr  error
	confirmErr   error
	completedEvt []events.StepCompleted
}

func (f *fakeCollaborators) Register(_ context.Context, p customersvc.IntakeParams) (customerrepo.Customer, bool, error) {
	if f.registerErr != nil {
		return customerrepo.Customer{}, false, f.registerErr
	}
	f.registered = append(f.registered, p)
	return customerrepo.Customer{ID: f.customerID, Name: p.FullName}, len(f.registered) == 1, nil
}

func (f *fakeCollaborators) Open(_ context.Context, customerID uuid.UUID, serviceType, transferType string) (servicerepo.ServiceRecord, error) {
	f.opened = append(f.opened, serviceType+"/"+transferType)
	return servicerepo.ServiceRecord{ID: uuid.New(), CustomerID: customerID, ServiceType: serviceType}, nil
}

func (f *fakeCollaborators) ConfirmChecklist(_ context.Context, _ uuid.UUID, docs []int) ([]docrepo.Document, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	f.confirmed = append(f.confirmed, docs)
	return nil, nil
}

func (f *fakeCollaborators) AttachFile(_ context.Context, up docservice.Upload) (doctransport.DocumentResponse, error) {
	f.uploads = append(f.uploads, up)
	return doctransport.DocumentResponse{ID: uuid.New(), DocumentType: docservice.DocumentType(up.Document), HasFile: true}, nil
}

func (f *fakeCollaborators) Submit(_ context.Context, req feedbacktransport.SubmitFeedbackRequest) (feedbacktransport.FeedbackResponse, error) {
	f.feedback = append(f.feedback, req)
	return feedbacktransport.FeedbackResponse{ID: uuid.New(), CustomerID: req.CustomerID, Rating: int(req.Rating)}, nil
}

func (f *fakeCollaborators) Handle(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completedEvt = append(f.completedEvt, e.(events.StepCompleted))
	return nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// slowStore widens the window between reading and saving a session.
type slowStore struct {
	*repository.MemoryStore
	delay time.Duration
}

func (s slowStore) Find(ctx context.Context, id uuid.UUID) (*domain.Session, bool, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.Find(ctx, id)
}

func newTestService(t *testing.T) (*Service, *fakeCollaborators, *testClock, *events.InMemoryBus) {
	t.Helper()
	return newTestServiceWithStore(t, repository.NewMemoryStore(time.Hour))
}

func newTestServiceWithStore(t *testing.T, store repository.SessionStore) (*Service, *fakeCollaborators, *testClock, *events.InMemoryBus) {
	t.Helper()
	fakes := &fakeCollaborators{customerID: uuid.New()}
	clock := &testClock{now: time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)}
	bus := events.NewInMemoryBus(logger.Discard())
	bus.Subscribe(events.StepCompleted{}.EventName(), events.HandlerFunc(fakes.Handle))

	svc := New(store, bus, logger.Discard())
	svc.now = clock.Now
	svc.SetCustomerRegistrar(fakes)
	svc.SetServiceOpener(fakes)
	svc.SetDocumentRecorder(fakes)
	svc.SetFeedbackSubmitter(fakes)
	return svc, fakes, clock, bus
}

func validIntake() IntakeParams {
	return IntakeParams{
		VehicleNumber: "WP CAB-1234",
		FullName:      "Nimal Perera",
		ContactNumber: "0771234567",
		ServiceType:   domain.ServiceOneDay,
	}
}

func TestFullWizardFlow(t *testing.T) {
	ctx := context.Background()
	svc, fakes, clock, bus := newTestService(t)

	session, err := svc.Create(ctx, domain.LanguageSinhala)
	require.NoError(t, err)
	require.Equal(t, domain.LanguageSinhala, session.State.Language)

	out, err := svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)
	require.Equal(t, domain.RouteServiceSelection, out.Next)
	require.Equal(t, fakes.customerID, *out.Session.CustomerID)
	require.Equal(t, "Nimal Perera", out.Session.Customer.FullName)

	out, err = svc.SelectTransferType(ctx, session.ID, "car")
	require.NoError(t, err)
	require.Equal(t, domain.RouteDocuments, out.Next)
	require.NotNil(t, out.Session.ServiceID)
	require.Equal(t, []string{"one_day/car"}, fakes.opened)

	for doc := 1; doc <= domain.ChecklistSize; doc++ {
		_, err := svc.ToggleChecklist(ctx, session.ID, doc)
		require.NoError(t, err)
	}

	out, err = svc.ConfirmDocuments(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RouteStepConfirmation, out.Next)
	require.Len(t, fakes.confirmed, 1)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, fakes.confirmed[0])
	_, started := out.Session.Timing(1)
	require.True(t, started)

	for step := 1; step <= domain.TerminalStep; step++ {
		clock.Advance(30 * time.Second)
		out, err = svc.CompleteCurrent(ctx, session.ID)
		require.NoError(t, err)
	}
	require.Equal(t, domain.RouteFeedback, out.Next)
	require.True(t, out.Session.Finished())

	bus.Wait()
	require.Len(t, fakes.completedEvt, domain.TerminalStep)

	result, next, err := svc.SubmitFeedback(ctx, session.ID, 5, nil)
	require.NoError(t, err)
	require.Equal(t, domain.RouteCustomerInfo, next)
	require.Equal(t, fakes.customerID, *result.CustomerID)

	_, err = svc.Get(ctx, session.ID)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestTransferTypeRequiresIntake(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)

	_, err = svc.SelectTransferType(ctx, session.ID, "motorbike")
	require.True(t, apperr.Is(err, apperr.KindPrecondition))
	require.Empty(t, fakes.opened)
}

func TestTransferTypeRejectsDisabledOption(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)
	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)

	_, err = svc.SelectTransferType(ctx, session.ID, "lorry")
	require.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SelectTransferType(ctx, session.ID, "spaceship")
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestConfirmDocumentsRequiresFullChecklist(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)
	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)

	for doc := 1; doc <= domain.ChecklistSize; doc++ {
		_, err := svc.ToggleChecklist(ctx, session.ID, doc)
		require.NoError(t, err)
	}
	_, err = svc.ToggleChecklist(ctx, session.ID, 4)
	require.NoError(t, err)

	_, err = svc.ConfirmDocuments(ctx, session.ID)
	require.True(t, apperr.Is(err, apperr.KindPrecondition))
	require.Empty(t, fakes.confirmed)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	require.Equal(t, map[string]int{"checked": domain.ChecklistSize - 1, "required": domain.ChecklistSize}, appErr.Details)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, stored.State.Timings)
}

func TestIntakeFailureLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, _ := newTestService(t)
	fakes.registerErr = errors.New("database unavailable")

	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)

	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.Error(t, err)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Nil(t, stored.CustomerID)
	require.Empty(t, stored.Customer.FullName)
}

func TestCompleteUnstartedStepStillAdvances(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, bus := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)

	out, err := svc.CompleteStep(ctx, session.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 2, out.Session.State.CurrentStep)
	require.Equal(t, domain.RouteStepConfirmation, out.Next)

	bus.Wait()
	require.Empty(t, fakes.completedEvt)
}

func TestElapsedTracksCurrentStep(t *testing.T) {
	ctx := context.Background()
	svc, _, clock, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)

	_, err = svc.StartStep(ctx, session.ID, 1)
	require.NoError(t, err)
	clock.Advance(75 * time.Second)

	step, elapsed, err := svc.Elapsed(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, 1, step)
	require.Equal(t, 75*time.Second, elapsed)
}

func TestUploadDocumentNeedsCustomer(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)

	_, err = svc.UploadDocument(ctx, session.ID, 2, DocumentFile{FileName: "nic.jpg", ContentType: "image/jpeg", Size: 10})
	require.True(t, apperr.Is(err, apperr.KindPrecondition))

	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)

	doc, err := svc.UploadDocument(ctx, session.ID, 2, DocumentFile{FileName: "nic.jpg", ContentType: "image/jpeg", Size: 10})
	require.NoError(t, err)
	require.Equal(t, "doc2", doc.DocumentType)
	require.Equal(t, fakes.customerID, fakes.uploads[0].CustomerID)

	_, err = svc.UploadDocument(ctx, session.ID, 8, DocumentFile{})
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestConcurrentTogglesAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, domain.ChecklistSize)
	for doc := 1; doc <= domain.ChecklistSize; doc++ {
		wg.Add(1)
		go func(doc int) {
			defer wg.Done()
			_, err := svc.ToggleChecklist(ctx, session.ID, doc)
			errs <- err
		}(doc)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, stored.Checklist.AllChecked())
	require.Zero(t, svc.locks.size())
}

func TestUnknownSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.ToggleTheme(context.Background(), uuid.New())
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func startedAfterIntake(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)
	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)
	_, err = svc.StartStep(ctx, session.ID, 1)
	require.NoError(t, err)
	return session.ID
}

func TestRepeatedCompleteStepPublishesOnce(t *testing.T) {
	ctx := context.Background()
	svc, fakes, clock, bus := newTestService(t)
	id := startedAfterIntake(t, svc)

	clock.Advance(time.Minute)
	first, err := svc.CompleteStep(ctx, id, 1)
	require.NoError(t, err)
	end, _ := first.Session.Timing(1)

	clock.Advance(time.Minute)
	again, err := svc.CompleteStep(ctx, id, 1)
	require.NoError(t, err)
	require.Equal(t, 2, again.Session.State.CurrentStep)
	timing, _ := again.Session.Timing(1)
	require.Equal(t, *end.EndTime, *timing.EndTime)

	bus.Wait()
	require.Len(t, fakes.completedEvt, 1)
}

func TestConcurrentCompleteCurrentNeverRepeatsStep(t *testing.T) {
	ctx := context.Background()
	store := slowStore{MemoryStore: repository.NewMemoryStore(time.Hour), delay: 20 * time.Millisecond}
	svc, fakes, _, bus := newTestServiceWithStore(t, store)
	id := startedAfterIntake(t, svc)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CompleteCurrent(ctx, id)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	bus.Wait()
	seen := make(map[int]int)
	for _, evt := range fakes.completedEvt {
		seen[evt.StepID]++
	}
	for step, n := range seen {
		require.Equal(t, 1, n, "step %d published %d times", step, n)
	}
	require.Equal(t, 1, seen[1])
}

func checkAll(t *testing.T, svc *Service, id uuid.UUID) {
	t.Helper()
	for doc := 1; doc <= domain.ChecklistSize; doc++ {
		_, err := svc.ToggleChecklist(context.Background(), id, doc)
		require.NoError(t, err)
	}
}

func TestConfirmDocumentsRecordsOncePerService(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)
	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)
	_, err = svc.SelectTransferType(ctx, session.ID, "car")
	require.NoError(t, err)
	checkAll(t, svc, session.ID)

	_, err = svc.ConfirmDocuments(ctx, session.ID)
	require.NoError(t, err)
	out, err := svc.ConfirmDocuments(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RouteStepConfirmation, out.Next)
	require.Len(t, fakes.confirmed, 1)

	_, err = svc.SelectTransferType(ctx, session.ID, "motorbike")
	require.NoError(t, err)
	_, err = svc.ConfirmDocuments(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, fakes.confirmed, 2)
}

func TestConfirmDocumentsRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	svc, fakes, _, _ := newTestService(t)
	session, err := svc.Create(ctx, domain.LanguageEnglish)
	require.NoError(t, err)
	_, err = svc.Intake(ctx, session.ID, validIntake())
	require.NoError(t, err)
	checkAll(t, svc, session.ID)

	fakes.confirmErr = errors.New("database unavailable")
	_, err = svc.ConfirmDocuments(ctx, session.ID)
	require.Error(t, err)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.False(t, stored.DocumentsConfirmed)
	require.Empty(t, stored.State.Timings)

	fakes.confirmErr = nil
	out, err := svc.ConfirmDocuments(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, out.Session.DocumentsConfirmed)
	require.Len(t, fakes.confirmed, 1)
}
