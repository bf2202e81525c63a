package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"
	StatusAdmitted   ApplicationStatus = "admitted"
	StatusWaiting    ApplicationStatus = "waiting"
	StatusRejected   ApplicationStatus = "rejected"
	StatusWaitlisted ApplicationStatus = "waitlisted"
)

// Application is a student's course application at an institution. The
// admissions batch only ever mutates Status (and AdmittedAt on admission);
// Score is written once at submission time.
type Application struct {
	ID            bson.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	StudentID     string            `json:"studentId" bson:"studentId"`
	StudentName   string            `json:"studentName,omitempty" bson:"studentName,omitempty"`
	InstitutionID string            `json:"institutionId" bson:"institutionId"`
	CourseID      string            `json:"courseId,omitempty" bson:"courseId,omitempty"`
	CourseName    string            `json:"courseName,omitempty" bson:"courseName,omitempty"`
	Score         float64           `json:"score" bson:"score"`
	Status        ApplicationStatus `json:"status" bson:"status"`
	SubmittedAt   int               `json:"submittedAt" bson:"submittedAt"`
	AdmittedAt    int               `json:"admittedAt,omitempty" bson:"admittedAt,omitempty"`
}

// StatusTransition is one status change produced by an admissions run. All
// transitions of a run are committed as a single atomic unit.
type StatusTransition struct {
	ApplicationID bson.ObjectID
	NewStatus     ApplicationStatus
}

// JobApplication records a student applying to a company job posting.
type JobApplication struct {
	ID          bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StudentID   string        `json:"studentId" bson:"studentId"`
	JobID       string        `json:"jobId" bson:"jobId"`
	Status      string        `json:"status" bson:"status"`
	SubmittedAt int           `json:"submittedAt" bson:"submittedAt"`
}
