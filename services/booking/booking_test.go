package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	earningsRepo "mistriconnect/database/repository/earnings"
	jobRepo "mistriconnect/database/repository/job"
	providerRepo "mistriconnect/database/repository/provider"
	schedulerRepo "mistriconnect/database/repository/scheduler"
	"mistriconnect/models"
	"mistriconnect/services/notification"
)

// fakeState backs the in-memory repositories. All fakes honor the same
// guards the Mongo implementations enforce through filters.
type fakeState struct {
	mu        sync.Mutex
	jobs      map[string]*models.JobRequest
	providers map[string]*models.Provider
	earnings  map[string]*models.MonthlyEarnings
	nextJobID int
}

func newFakeState() *fakeState {
	return &fakeState{
		jobs:      make(map[string]*models.JobRequest),
		providers: make(map[string]*models.Provider),
		earnings:  make(map[string]*models.MonthlyEarnings),
	}
}

func earningsKey(providerID string, month models.Month) string {
	return fmt.Sprintf("%s|%d|%d", providerID, month.Year, int(month.Month))
}

func (st *fakeState) slotCommitted(providerID, date, slot string) bool {
	prov := st.providers[providerID]
	if prov == nil {
		return false
	}
	for _, b := range prov.Booked {
		if b.Date == date && b.Slot == slot {
			return true
		}
	}
	return false
}

type fakeJobRepo struct{ st *fakeState }

func (r *fakeJobRepo) Create(_ context.Context, job *models.JobRequest) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.nextJobID++
	job.ID = fmt.Sprintf("job-%d", r.st.nextJobID)
	job.Status = models.StatusPending
	cp := *job
	r.st.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*models.JobRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	job, ok := r.st.jobs[id]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *fakeJobRepo) ListByCustomer(_ context.Context, customerID string) ([]models.JobRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var jobs []models.JobRequest
	for _, job := range r.st.jobs {
		if job.CustomerID == customerID {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListByProvider(_ context.Context, providerID string) ([]models.JobRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var jobs []models.JobRequest
	for _, job := range r.st.jobs {
		if job.ProviderID == providerID {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) RejectIfPending(_ context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	job, ok := r.st.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	if job.Status != models.StatusPending {
		return jobRepo.ErrNotPending
	}
	job.Status = models.StatusRejected
	return nil
}

func (r *fakeJobRepo) DeleteIfPending(_ context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	job, ok := r.st.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	if job.Status != models.StatusPending {
		return jobRepo.ErrNotPending
	}
	delete(r.st.jobs, id)
	return nil
}

func (r *fakeJobRepo) SetReview(_ context.Context, id string, rating int, review string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	job, ok := r.st.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	if job.Status == models.StatusPending {
		return jobRepo.ErrNotPending
	}
	if job.Rating != 0 {
		return jobRepo.ErrAlreadyReviewed
	}
	job.Rating = rating
	job.Review = review
	return nil
}

type fakeProviderRepo struct{ st *fakeState }

func (r *fakeProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cp := *provider
	r.st.providers[provider.ID] = &cp
	return nil
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	prov, ok := r.st.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *prov
	return &cp, nil
}

func (r *fakeProviderRepo) GetByEmail(_ context.Context, email string) (*models.Provider, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, prov := range r.st.providers {
		if prov.Email == email {
			cp := *prov
			return &cp, nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (r *fakeProviderRepo) UpdateProfile(_ context.Context, id string, name, phoneNumber, area string, price float64) error {
	return nil
}

func (r *fakeProviderRepo) SetTokenHash(_ context.Context, id, tokenHash string) error { return nil }

func (r *fakeProviderRepo) Search(_ context.Context, serviceType, area string) ([]models.Provider, error) {
	return nil, nil
}

func (r *fakeProviderRepo) AddServiceType(_ context.Context, id, serviceType string) error {
	return nil
}

func (r *fakeProviderRepo) RemoveServiceType(_ context.Context, id, serviceType string) error {
	return nil
}

func (r *fakeProviderRepo) IsSlotAvailable(_ context.Context, id, date, slot string) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.providers[id]; !ok {
		return false, providerRepo.ErrNotFound
	}
	return !r.st.slotCommitted(id, date, slot), nil
}

func (r *fakeProviderRepo) CommitSlot(_ context.Context, id, date, slot string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	prov, ok := r.st.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	if r.st.slotCommitted(id, date, slot) {
		return providerRepo.ErrSlotTaken
	}
	prov.Booked = append(prov.Booked, models.BookedSlot{Date: date, Slot: slot})
	return nil
}

func (r *fakeProviderRepo) ApplyRating(_ context.Context, id string, rating float64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	prov, ok := r.st.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	prov.Rating = AccumulateRating(prov.Rating, rating)
	return nil
}

// fakeLedger implements the earnings repository over fakeState, with the
// same jobID-keyed idempotence the Mongo PostJob enforces in its filter.
type fakeLedger struct{ st *fakeState }

var _ earningsRepo.Repository = (*fakeLedger)(nil)

func (l *fakeLedger) PostJob(_ context.Context, providerID string, month models.Month, jobID string, amount float64) error {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	return l.postJobLocked(providerID, month, jobID, amount)
}

func (l *fakeLedger) postJobLocked(providerID string, month models.Month, jobID string, amount float64) error {
	key := earningsKey(providerID, month)
	record, ok := l.st.earnings[key]
	if !ok {
		record = &models.MonthlyEarnings{
			ProviderID: providerID,
			Year:       month.Year,
			MonthNum:   int(month.Month),
		}
		l.st.earnings[key] = record
	}
	for _, entry := range record.Jobs {
		if entry.JobID == jobID {
			return nil
		}
	}
	record.Jobs = append(record.Jobs, models.JobEarning{JobID: jobID, Amount: amount})
	record.TotalEarned += amount
	return nil
}

func (l *fakeLedger) GetMonth(_ context.Context, providerID string, month models.Month) (*models.MonthlyEarnings, error) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	record, ok := l.st.earnings[earningsKey(providerID, month)]
	if !ok {
		return nil, earningsRepo.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

func (l *fakeLedger) ListMonths(_ context.Context, providerID string) ([]models.MonthlyEarnings, error) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	var out []models.MonthlyEarnings
	for _, record := range l.st.earnings {
		if record.ProviderID == providerID {
			out = append(out, *record)
		}
	}
	return out, nil
}

// fakeScheduler applies the accept transaction under one lock: all three
// mutations or none, exactly like the Mongo transaction. The earnings step
// goes through the ledger, mirroring the production delegation.
type fakeScheduler struct {
	st           *fakeState
	ledger       *fakeLedger
	failEarnings bool
}

func (s *fakeScheduler) AcceptBooking(_ context.Context, job *models.JobRequest, month models.Month) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	stored, ok := s.st.jobs[job.ID]
	if !ok || stored.Status != models.StatusPending || stored.ProviderID != job.ProviderID {
		return schedulerRepo.ErrNotPending
	}
	prov, ok := s.st.providers[job.ProviderID]
	if !ok || s.st.slotCommitted(job.ProviderID, job.Date, job.Slot) {
		return schedulerRepo.ErrSlotTaken
	}
	if s.failEarnings {
		return errors.New("earnings post failed")
	}

	stored.Status = models.StatusAccepted
	prov.Booked = append(prov.Booked, models.BookedSlot{Date: job.Date, Slot: job.Slot})
	return s.ledger.postJobLocked(job.ProviderID, month, job.ID, job.Price)
}

type stubNotifier struct {
	mu       sync.Mutex
	payloads []notification.BookingStatusPayload
}

func (n *stubNotifier) NotifyBookingStatus(_ context.Context, payload notification.BookingStatusPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
	return nil
}

func newTestService() (*DefaultBookingService, *fakeState, *stubNotifier) {
	st := newFakeState()
	notifier := &stubNotifier{}
	svc := &DefaultBookingService{
		Jobs:      &fakeJobRepo{st: st},
		Providers: &fakeProviderRepo{st: st},
		Scheduler: &fakeScheduler{st: st, ledger: &fakeLedger{st: st}},
		Notifier:  notifier,
	}
	return svc, st, notifier
}

func seedProvider(st *fakeState, id string) {
	st.providers[id] = &models.Provider{
		ID:           id,
		Name:         "Ravi",
		Email:        id + "@example.com",
		ServiceTypes: []string{"Plumber"},
		Area:         "Indiranagar",
		Price:        500,
	}
}

func createPending(t *testing.T, svc *DefaultBookingService, customerID, providerID, date, slot string, price float64) *models.JobRequest {
	t.Helper()
	job, err := svc.Create(context.Background(), CreateInput{
		CustomerID:  customerID,
		ProviderID:  providerID,
		Description: "leaky tap",
		Date:        date,
		Slot:        slot,
		Price:       price,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return job
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")

	cases := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"missing provider", CreateInput{CustomerID: "c1", Date: "2025-03-10", Slot: models.SlotForenoon, Price: 500}, ErrInvalidInput},
		{"zero price", CreateInput{CustomerID: "c1", ProviderID: "prov-1", Date: "2025-03-10", Slot: models.SlotForenoon}, ErrInvalidInput},
		{"negative price", CreateInput{CustomerID: "c1", ProviderID: "prov-1", Date: "2025-03-10", Slot: models.SlotForenoon, Price: -5}, ErrInvalidInput},
		{"bad slot", CreateInput{CustomerID: "c1", ProviderID: "prov-1", Date: "2025-03-10", Slot: "evening", Price: 500}, ErrInvalidInput},
		{"bad date", CreateInput{CustomerID: "c1", ProviderID: "prov-1", Date: "10/03/2025", Slot: models.SlotForenoon, Price: 500}, ErrInvalidInput},
		{"unknown provider", CreateInput{CustomerID: "c1", ProviderID: "ghost", Date: "2025-03-10", Slot: models.SlotForenoon, Price: 500}, ErrNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreateRejectsCommittedSlot(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")
	st.providers["prov-1"].Booked = []models.BookedSlot{{Date: "2025-03-10", Slot: models.SlotForenoon}}

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: "c1", ProviderID: "prov-1",
		Date: "2025-03-10", Slot: models.SlotForenoon, Price: 500,
	})
	if !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}
}

func TestAcceptHappyPath(t *testing.T) {
	t.Parallel()

	svc, st, notifier := newTestService()
	seedProvider(st, "prov-1")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)

	accepted, err := svc.Accept(context.Background(), job.ID, "prov-1")
	if err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if accepted.Status != models.StatusAccepted {
		t.Fatalf("expected accepted status, got %s", accepted.Status)
	}
	if !st.slotCommitted("prov-1", "2025-03-10", models.SlotForenoon) {
		t.Fatal("expected slot to be committed")
	}

	record := st.earnings[earningsKey("prov-1", models.Month{Year: 2025, Month: 3})]
	if record == nil {
		t.Fatal("expected a March 2025 earnings record")
	}
	if record.TotalEarned != 500 || len(record.Jobs) != 1 || record.Jobs[0].JobID != job.ID {
		t.Fatalf("unexpected earnings record: %+v", record)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.payloads) != 1 || notifier.payloads[0].Status != models.StatusAccepted {
		t.Fatalf("expected one accepted notification, got %+v", notifier.payloads)
	}
}

func TestAcceptAuthorizationAndTerminality(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")
	seedProvider(st, "prov-2")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)

	if _, err := svc.Accept(context.Background(), "missing", "prov-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Accept(context.Background(), job.ID, "prov-2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := svc.Accept(context.Background(), job.ID, "prov-1"); err != nil {
		t.Fatalf("first accept error: %v", err)
	}
	// Once terminal, repeated decisions are invalid transitions.
	if _, err := svc.Accept(context.Background(), job.ID, "prov-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on re-accept, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), job.ID, "prov-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on reject-after-accept, got %v", err)
	}
}

func TestConcurrentAcceptsSameSlot(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")

	// Two customers race for the same provider/date/slot; both are pending.
	first := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)
	second := createPending(t, svc, "cust-2", "prov-1", "2025-03-10", models.SlotForenoon, 700)

	errs := make(chan error, 2)
	for _, id := range []string{first.ID, second.ID} {
		go func(jobID string) {
			_, err := svc.Accept(context.Background(), jobID, "prov-1")
			errs <- err
		}(id)
	}

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	var acceptedCount, pendingCount int
	for _, job := range st.jobs {
		switch job.Status {
		case models.StatusAccepted:
			acceptedCount++
		case models.StatusPending:
			pendingCount++
		}
	}
	if acceptedCount != 1 || pendingCount != 1 {
		t.Fatalf("expected one accepted and one still-pending job, got %d/%d", acceptedCount, pendingCount)
	}
	if got := len(st.providers["prov-1"].Booked); got != 1 {
		t.Fatalf("expected a single committed slot, got %d", got)
	}
}

func TestAcceptFailureLeavesNoPartialState(t *testing.T) {
	t.Parallel()

	st := newFakeState()
	sched := &fakeScheduler{st: st, ledger: &fakeLedger{st: st}, failEarnings: true}
	svc := &DefaultBookingService{
		Jobs:      &fakeJobRepo{st: st},
		Providers: &fakeProviderRepo{st: st},
		Scheduler: sched,
	}
	seedProvider(st, "prov-1")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)

	if _, err := svc.Accept(context.Background(), job.ID, "prov-1"); err == nil {
		t.Fatal("expected accept to fail")
	}

	// Either all three effects or none: the job must still be pending, the
	// slot uncommitted and the ledger untouched.
	reloaded, err := svc.Jobs.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if reloaded.Status != models.StatusPending {
		t.Fatalf("expected job to remain pending, got %s", reloaded.Status)
	}
	if st.slotCommitted("prov-1", "2025-03-10", models.SlotForenoon) {
		t.Fatal("expected no slot commitment after failed accept")
	}
	if len(st.earnings) != 0 {
		t.Fatalf("expected empty earnings ledger, got %+v", st.earnings)
	}

	// A retry after the transient failure clears must succeed cleanly.
	sched.failEarnings = false
	if _, err := svc.Accept(context.Background(), job.ID, "prov-1"); err != nil {
		t.Fatalf("retry accept error: %v", err)
	}
}

func TestAcceptEarningsPostRetrySafe(t *testing.T) {
	t.Parallel()

	st := newFakeState()
	ledger := &fakeLedger{st: st}
	svc := &DefaultBookingService{
		Jobs:      &fakeJobRepo{st: st},
		Providers: &fakeProviderRepo{st: st},
		Scheduler: &fakeScheduler{st: st, ledger: ledger},
	}
	seedProvider(st, "prov-1")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)

	if _, err := svc.Accept(context.Background(), job.ID, "prov-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}

	// A replayed ledger post for the same job, as a retried orchestration
	// would issue, must not double-count.
	march := models.Month{Year: 2025, Month: 3}
	if err := ledger.PostJob(context.Background(), "prov-1", march, job.ID, 500); err != nil {
		t.Fatalf("PostJob error: %v", err)
	}

	record := st.earnings[earningsKey("prov-1", march)]
	if record == nil {
		t.Fatal("expected a March 2025 earnings record")
	}
	if record.TotalEarned != 500 || len(record.Jobs) != 1 {
		t.Fatalf("expected one posting totaling 500, got %+v", record)
	}
}

func TestRejectHasNoSideEffects(t *testing.T) {
	t.Parallel()

	svc, st, notifier := newTestService()
	seedProvider(st, "prov-1")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)

	rejected, err := svc.Reject(context.Background(), job.ID, "prov-1")
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}
	if st.slotCommitted("prov-1", "2025-03-10", models.SlotForenoon) {
		t.Fatal("reject must not commit a slot")
	}
	if len(st.earnings) != 0 {
		t.Fatal("reject must not post earnings")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.payloads) != 1 || notifier.payloads[0].Status != models.StatusRejected {
		t.Fatalf("expected one rejected notification, got %+v", notifier.payloads)
	}

	if _, err := svc.Reject(context.Background(), job.ID, "prov-2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign provider, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)

	if err := svc.Cancel(context.Background(), job.ID, "cust-2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign customer, got %v", err)
	}
	if err := svc.Cancel(context.Background(), job.ID, "cust-1"); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if _, err := svc.Jobs.GetByID(context.Background(), job.ID); !errors.Is(err, jobRepo.ErrNotFound) {
		t.Fatal("expected cancelled job to be deleted")
	}

	// A decided request can no longer be cancelled.
	decided := createPending(t, svc, "cust-1", "prov-1", "2025-03-11", models.SlotForenoon, 500)
	if _, err := svc.Accept(context.Background(), decided.ID, "prov-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if err := svc.Cancel(context.Background(), decided.ID, "cust-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReviewAndRatingAggregate(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")

	pending := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)
	if err := svc.Review(context.Background(), ReviewInput{JobID: pending.ID, CustomerID: "cust-1", Rating: 4}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending review, got %v", err)
	}
	if err := svc.Review(context.Background(), ReviewInput{JobID: pending.ID, CustomerID: "cust-1", Rating: 9}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range rating, got %v", err)
	}

	if _, err := svc.Accept(context.Background(), pending.ID, "prov-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if err := svc.Review(context.Background(), ReviewInput{JobID: pending.ID, CustomerID: "cust-2", Rating: 4}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign reviewer, got %v", err)
	}

	// First review of an unrated provider sets the aggregate directly.
	if err := svc.Review(context.Background(), ReviewInput{JobID: pending.ID, CustomerID: "cust-1", Rating: 4, Comment: "solid work"}); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if got := st.providers["prov-1"].Rating; got != 4 {
		t.Fatalf("expected aggregate 4, got %v", got)
	}
	if job := st.jobs[pending.ID]; job.Rating != 4 || job.Review != "solid work" {
		t.Fatalf("expected stored review, got %+v", job)
	}

	// Second review averages with the previous aggregate: (4+2)/2 = 3.
	second := createPending(t, svc, "cust-1", "prov-1", "2025-03-12", models.SlotForenoon, 500)
	if _, err := svc.Accept(context.Background(), second.ID, "prov-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if err := svc.Review(context.Background(), ReviewInput{JobID: second.ID, CustomerID: "cust-1", Rating: 2}); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if got := st.providers["prov-1"].Rating; got != 3 {
		t.Fatalf("expected aggregate 3, got %v", got)
	}
}

func TestReviewOnlyOnce(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")
	job := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)
	if _, err := svc.Accept(context.Background(), job.ID, "prov-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}

	if err := svc.Review(context.Background(), ReviewInput{JobID: job.ID, CustomerID: "cust-1", Rating: 4}); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	// Re-reviewing the same job must fail and leave the aggregate alone.
	if err := svc.Review(context.Background(), ReviewInput{JobID: job.ID, CustomerID: "cust-1", Rating: 5}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second review, got %v", err)
	}
	if got := st.providers["prov-1"].Rating; got != 4 {
		t.Fatalf("expected aggregate to stay 4, got %v", got)
	}
	if got := st.jobs[job.ID].Rating; got != 4 {
		t.Fatalf("expected stored rating to stay 4, got %v", got)
	}
}

func TestConcurrentReviewsBothAccumulate(t *testing.T) {
	t.Parallel()

	svc, st, _ := newTestService()
	seedProvider(st, "prov-1")

	first := createPending(t, svc, "cust-1", "prov-1", "2025-03-10", models.SlotForenoon, 500)
	second := createPending(t, svc, "cust-1", "prov-1", "2025-03-11", models.SlotForenoon, 500)
	for _, id := range []string{first.ID, second.ID} {
		if _, err := svc.Accept(context.Background(), id, "prov-1"); err != nil {
			t.Fatalf("Accept error: %v", err)
		}
	}

	// Folding 4 and 2 into an unrated aggregate ends at 3 in either order
	// ((0->4, then (4+2)/2) or (0->2, then (2+4)/2)); a lost update would
	// leave 4 or 2.
	errs := make(chan error, 2)
	reviews := map[string]int{first.ID: 4, second.ID: 2}
	for id, rating := range reviews {
		go func(jobID string, rating int) {
			errs <- svc.Review(context.Background(), ReviewInput{JobID: jobID, CustomerID: "cust-1", Rating: rating})
		}(id, rating)
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("Review error: %v", err)
		}
	}

	if got := st.providers["prov-1"].Rating; got != 3 {
		t.Fatalf("expected aggregate 3 after both reviews, got %v", got)
	}
}

func TestAccumulateRating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		current, incoming, want float64
	}{
		{0, 4, 4},
		{4, 2, 3},
		{3, 5, 4},
		{5, 5, 5},
	}
	for _, tc := range cases {
		if got := AccumulateRating(tc.current, tc.incoming); got != tc.want {
			t.Fatalf("AccumulateRating(%v, %v) = %v, want %v", tc.current, tc.incoming, got, tc.want)
		}
	}
}
