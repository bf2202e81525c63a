package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type JobPosting struct {
	ID             bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID      string        `json:"companyId" bson:"companyId"`
	CompanyName    string        `json:"companyName,omitempty" bson:"companyName,omitempty"`
	Title          string        `json:"title" bson:"title"`
	Requirements   string        `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Qualifications string        `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	Metadata       Metadata      `json:"metadata" bson:"metadata"`
}
