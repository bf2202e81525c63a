package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// AcademicRecord entries are append-only; the last element is the most
// recent one, insertion order is authoritative.
type AcademicRecord struct {
	Institution string `json:"institution" bson:"institution"`
	Year        string `json:"year,omitempty" bson:"year,omitempty"`
	GPA         string `json:"gpa,omitempty" bson:"gpa,omitempty"`
}

type Certificate struct {
	Name   string `json:"name" bson:"name"`
	Issuer string `json:"issuer,omitempty" bson:"issuer,omitempty"`
}

type WorkExperience struct {
	Company  string `json:"company" bson:"company"`
	Position string `json:"position,omitempty" bson:"position,omitempty"`
	Duration string `json:"duration,omitempty" bson:"duration,omitempty"`
}

type Metadata struct {
	CreatedAt int `json:"createdAt" bson:"createdAt"`
	UpdatedAt int `json:"updatedAt" bson:"updatedAt"`
}

type StudentProfile struct {
	ID              bson.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          string           `json:"userId" bson:"userId"`
	DisplayName     string           `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Email           string           `json:"email,omitempty" bson:"email,omitempty"`
	AcademicRecords []AcademicRecord `json:"academicRecords,omitempty" bson:"academicRecords,omitempty"`
	Certificates    []Certificate    `json:"certificates,omitempty" bson:"certificates,omitempty"`
	WorkExperience  []WorkExperience `json:"workExperience,omitempty" bson:"workExperience,omitempty"`
	Skills          []string         `json:"skills,omitempty" bson:"skills,omitempty"`
	Metadata        Metadata         `json:"metadata" bson:"metadata"`
}
