package service

import (
	"context"
	"errors"
	"testing"

	"career-service/internal/event"
	"career-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// mockApplicationStore keeps applications in memory and applies transition
// sets all-or-nothing, the same contract the Mongo repository provides.
type mockApplicationStore struct {
	applications map[bson.ObjectID]*models.Application
	fetchOrder   []bson.ObjectID
	failCommit   bool
	commitCalls  int
}

func newMockApplicationStore(apps ...*models.Application) *mockApplicationStore {
	store := &mockApplicationStore{
		applications: make(map[bson.ObjectID]*models.Application),
	}
	for _, app := range apps {
		if app.ID.IsZero() {
			app.ID = bson.NewObjectID()
		}
		store.applications[app.ID] = app
		store.fetchOrder = append(store.fetchOrder, app.ID)
	}
	return store
}

func (m *mockApplicationStore) FindPendingByInstitution(ctx context.Context, institutionID string) ([]models.Application, error) {
	var pending []models.Application
	for _, id := range m.fetchOrder {
		app := m.applications[id]
		if app.InstitutionID == institutionID && app.Status == models.StatusPending {
			pending = append(pending, *app)
		}
	}
	return pending, nil
}

func (m *mockApplicationStore) ApplyTransitions(ctx context.Context, transitions []models.StatusTransition) error {
	m.commitCalls++
	if m.failCommit {
		return errors.New("transaction aborted")
	}

	for _, transition := range transitions {
		app, ok := m.applications[transition.ApplicationID]
		if !ok || app.Status != models.StatusPending {
			return errors.New("application no longer pending")
		}
	}
	for _, transition := range transitions {
		m.applications[transition.ApplicationID].Status = transition.NewStatus
	}
	return nil
}

func pendingApp(institutionID string, score float64) *models.Application {
	return &models.Application{
		ID:            bson.NewObjectID(),
		InstitutionID: institutionID,
		Score:         score,
		Status:        models.StatusPending,
	}
}

func TestProcessIntakePartitionsAndCommits(t *testing.T) {
	high := pendingApp("inst1", 90)
	low := pendingApp("inst1", 50)
	mid := pendingApp("inst1", 70)
	store := newMockApplicationStore(high, low, mid)
	svc := NewAdmissionsService(store, event.NewMockPublisher(), 30)

	response, err := svc.ProcessIntake(context.Background(), "inst1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Admitted != 2 || response.Waiting != 1 {
		t.Errorf("expected 2 admitted / 1 waiting, got %d / %d", response.Admitted, response.Waiting)
	}
	if store.applications[high.ID].Status != models.StatusAdmitted {
		t.Errorf("highest score should be admitted, got %s", store.applications[high.ID].Status)
	}
	if store.applications[mid.ID].Status != models.StatusAdmitted {
		t.Errorf("second-highest score should be admitted, got %s", store.applications[mid.ID].Status)
	}
	if store.applications[low.ID].Status != models.StatusWaiting {
		t.Errorf("lowest score should wait, got %s", store.applications[low.ID].Status)
	}
}

func TestProcessIntakeIsIdempotent(t *testing.T) {
	store := newMockApplicationStore(
		pendingApp("inst1", 90),
		pendingApp("inst1", 50),
		pendingApp("inst1", 70),
	)
	svc := NewAdmissionsService(store, event.NewMockPublisher(), 30)

	if _, err := svc.ProcessIntake(context.Background(), "inst1", 2); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// The second run sees nothing pending and must be a no-op.
	response, err := svc.ProcessIntake(context.Background(), "inst1", 2)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if response.Admitted != 0 || response.Waiting != 0 {
		t.Errorf("expected empty second run, got %d admitted / %d waiting", response.Admitted, response.Waiting)
	}
	if store.commitCalls != 1 {
		t.Errorf("second run must not commit, got %d commits", store.commitCalls)
	}
}

func TestProcessIntakeCommitFailureLeavesStateUntouched(t *testing.T) {
	app := pendingApp("inst1", 80)
	store := newMockApplicationStore(app)
	store.failCommit = true
	publisher := event.NewMockPublisher()
	svc := NewAdmissionsService(store, publisher, 30)

	_, err := svc.ProcessIntake(context.Background(), "inst1", 1)

	if !errors.Is(err, ErrCommitFailed) {
		t.Fatalf("expected ErrCommitFailed, got %v", err)
	}
	if store.applications[app.ID].Status != models.StatusPending {
		t.Error("failed commit must leave applications pending")
	}
	if len(publisher.Events) != 0 {
		t.Error("no event may be published for a failed commit")
	}

	// Everything is still pending, so a retry processes the full set.
	store.failCommit = false
	response, err := svc.ProcessIntake(context.Background(), "inst1", 1)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if response.Admitted != 1 {
		t.Errorf("retry should admit 1, got %d", response.Admitted)
	}
}

func TestProcessIntakeZeroCapacityPausesIntake(t *testing.T) {
	app := pendingApp("inst1", 10)
	store := newMockApplicationStore(app)
	svc := NewAdmissionsService(store, event.NewMockPublisher(), 30)

	response, err := svc.ProcessIntake(context.Background(), "inst1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Admitted != 0 || response.Waiting != 1 {
		t.Errorf("expected 0 admitted / 1 waiting, got %d / %d", response.Admitted, response.Waiting)
	}
	if store.applications[app.ID].Status != models.StatusWaiting {
		t.Errorf("application should wait, got %s", store.applications[app.ID].Status)
	}
}

func TestProcessIntakeValidation(t *testing.T) {
	svc := NewAdmissionsService(newMockApplicationStore(), event.NewMockPublisher(), 30)

	_, err := svc.ProcessIntake(context.Background(), "", 10)
	if !errors.Is(err, ErrMissingInstitutionID) {
		t.Errorf("expected ErrMissingInstitutionID, got %v", err)
	}
}

func TestProcessIntakeUnknownInstitutionIsEmptySuccess(t *testing.T) {
	store := newMockApplicationStore(pendingApp("inst1", 90))
	svc := NewAdmissionsService(store, event.NewMockPublisher(), 30)

	response, err := svc.ProcessIntake(context.Background(), "inst-unknown", 10)
	if err != nil {
		t.Fatalf("unknown institution must not error: %v", err)
	}
	if response.Admitted != 0 || response.Waiting != 0 {
		t.Errorf("expected empty result, got %d / %d", response.Admitted, response.Waiting)
	}
	if store.commitCalls != 0 {
		t.Error("nothing to process, nothing to commit")
	}
}

func TestProcessIntakeDoesNotTouchOtherInstitutions(t *testing.T) {
	mine := pendingApp("inst1", 60)
	other := pendingApp("inst2", 99)
	store := newMockApplicationStore(mine, other)
	svc := NewAdmissionsService(store, event.NewMockPublisher(), 30)

	if _, err := svc.ProcessIntake(context.Background(), "inst1", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.applications[other.ID].Status != models.StatusPending {
		t.Error("applications of other institutions must stay pending")
	}
}

func TestProcessIntakePublishesCompletionEvent(t *testing.T) {
	store := newMockApplicationStore(pendingApp("inst1", 90))
	publisher := event.NewMockPublisher()
	svc := NewAdmissionsService(store, publisher, 30)

	if _, err := svc.ProcessIntake(context.Background(), "inst1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.Events))
	}
	published := publisher.Events[0]
	if published.EventType != models.EventTypeAdmissionsCompleted {
		t.Errorf("unexpected event type %s", published.EventType)
	}
	if published.InstitutionID != "inst1" {
		t.Errorf("unexpected institution id %s", published.InstitutionID)
	}
}
