package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestApplicationZeroScoreIsPersisted(t *testing.T) {
	// A stored score of 0 is a legitimate value the admissions ranking
	// sorts on; the document must carry it explicitly.
	app := Application{
		ID:            bson.NewObjectID(),
		StudentID:     "student-1",
		InstitutionID: "inst1",
		Score:         0,
		Status:        StatusPending,
		SubmittedAt:   1700000000,
	}

	raw, err := bson.Marshal(app)
	if err != nil {
		t.Fatalf("failed to marshal application: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("failed to unmarshal document: %v", err)
	}

	score, ok := doc["score"]
	if !ok {
		t.Fatal("score field missing from stored document")
	}
	if score != float64(0) {
		t.Errorf("stored score = %v, want 0", score)
	}
}
