package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"career-service/internal/event"
	"career-service/internal/middleware"
	"career-service/internal/models"
	"career-service/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// stubApplicationStore keeps applications in memory for handler tests.
type stubApplicationStore struct {
	apps []*models.Application
}

func (s *stubApplicationStore) FindPendingByInstitution(ctx context.Context, institutionID string) ([]models.Application, error) {
	var pending []models.Application
	for _, app := range s.apps {
		if app.InstitutionID == institutionID && app.Status == models.StatusPending {
			pending = append(pending, *app)
		}
	}
	return pending, nil
}

func (s *stubApplicationStore) ApplyTransitions(ctx context.Context, transitions []models.StatusTransition) error {
	for _, transition := range transitions {
		for _, app := range s.apps {
			if app.ID == transition.ApplicationID {
				app.Status = transition.NewStatus
			}
		}
	}
	return nil
}

func newAdmissionsTestApp(store *stubApplicationStore, defaultLimit int) *fiber.App {
	app := fiber.New()
	admissionsService := service.NewAdmissionsService(store, event.NewMockPublisher(), defaultLimit)
	NewAdmissionsHandler(admissionsService, nil).RegisterRoutes(app)
	return app
}

func postAdmissions(t *testing.T, app *fiber.App, body string) models.ProcessAdmissionsResponse {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/protected/admissions/process", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "admin-1")
	req.Header.Set(middleware.UserRoleHeader, string(models.RoleAdmin))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var envelope struct {
		Data models.ProcessAdmissionsResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return envelope.Data
}

func pendingApplication(institutionID string, score float64) *models.Application {
	return &models.Application{
		ID:            bson.NewObjectID(),
		InstitutionID: institutionID,
		Score:         score,
		Status:        models.StatusPending,
	}
}

func TestProcessAdmissionsIntakeLimitHandling(t *testing.T) {
	t.Run("explicit zero pauses intake", func(t *testing.T) {
		store := &stubApplicationStore{apps: []*models.Application{
			pendingApplication("inst1", 90),
			pendingApplication("inst1", 70),
		}}
		app := newAdmissionsTestApp(store, 30)

		response := postAdmissions(t, app, `{"institutionId":"inst1","intakeLimit":0}`)

		if response.Admitted != 0 || response.Waiting != 2 {
			t.Errorf("intakeLimit 0 must admit nobody, got %d admitted / %d waiting", response.Admitted, response.Waiting)
		}
		for _, stored := range store.apps {
			if stored.Status != models.StatusWaiting {
				t.Errorf("application should wait at zero capacity, got %s", stored.Status)
			}
		}
	})

	t.Run("omitted limit uses the configured default", func(t *testing.T) {
		store := &stubApplicationStore{apps: []*models.Application{
			pendingApplication("inst1", 90),
			pendingApplication("inst1", 70),
		}}
		app := newAdmissionsTestApp(store, 30)

		response := postAdmissions(t, app, `{"institutionId":"inst1"}`)

		if response.Admitted != 2 || response.Waiting != 0 {
			t.Errorf("omitted limit should default to 30, got %d admitted / %d waiting", response.Admitted, response.Waiting)
		}
	})

	t.Run("explicit limit partitions at that capacity", func(t *testing.T) {
		store := &stubApplicationStore{apps: []*models.Application{
			pendingApplication("inst1", 90),
			pendingApplication("inst1", 70),
		}}
		app := newAdmissionsTestApp(store, 30)

		response := postAdmissions(t, app, `{"institutionId":"inst1","intakeLimit":1}`)

		if response.Admitted != 1 || response.Waiting != 1 {
			t.Errorf("expected 1 admitted / 1 waiting, got %d / %d", response.Admitted, response.Waiting)
		}
	})
}
