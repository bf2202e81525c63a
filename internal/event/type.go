package event

import (
	"time"

	"career-service/internal/models"
)

func NewAdmissionsCompletedEvent(institutionID string, admitted, waiting int) *models.CareerEvent {
	return &models.CareerEvent{
		EventType:     models.EventTypeAdmissionsCompleted,
		InstitutionID: institutionID,
		Timestamp:     time.Now().Unix(),
		Payload: map[string]any{
			"admitted": admitted,
			"waiting":  waiting,
		},
	}
}

func NewApplicationSubmittedEvent(studentID, institutionID string) *models.CareerEvent {
	return &models.CareerEvent{
		EventType:     models.EventTypeApplicationSubmitted,
		UserID:        studentID,
		InstitutionID: institutionID,
		Timestamp:     time.Now().Unix(),
	}
}

func NewProfileUpdatedEvent(userID string, changedFields []string) *models.CareerEvent {
	return &models.CareerEvent{
		EventType: models.EventTypeProfileUpdated,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
		Payload: map[string]any{
			"changedFields": changedFields,
		},
	}
}
