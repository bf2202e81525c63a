package models

type EventType string

const (
	EventTypeProfileUpdated       EventType = "profile.updated"
	EventTypeApplicationSubmitted EventType = "application.submitted"
	EventTypeAdmissionsCompleted  EventType = "admissions.completed"
	EventTypeUserRegistered       EventType = "user.registered"
	EventTypeUserUpdated          EventType = "user.updated"
)

type CareerEvent struct {
	EventType     EventType      `json:"eventType"`
	UserID        string         `json:"userId,omitempty"`
	InstitutionID string         `json:"institutionId,omitempty"`
	Timestamp     int64          `json:"timestamp"`
	Payload       map[string]any `json:"payload,omitempty"`
}

type UserRegisterEvent struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type UserUpdatedEvent struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
}
