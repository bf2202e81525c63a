package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"career-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type JobApplicationRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewJobApplicationRepository(db *mongo.Database) *JobApplicationRepository {
	return &JobApplicationRepository{
		collection: db.Collection("JobApplication"),
		mu:         &sync.Mutex{},
	}
}

func (r *JobApplicationRepository) New(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if app.ID.IsZero() {
		app.ID = bson.NewObjectID()
	}
	if app.Status == "" {
		app.Status = "applied"
	}
	if app.SubmittedAt == 0 {
		app.SubmittedAt = int(time.Now().Unix())
	}

	_, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job application: %w", err)
	}
	return app, nil
}

func (r *JobApplicationRepository) Exists(ctx context.Context, studentID, jobID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"studentId": studentID, "jobId": jobID})
	if err != nil {
		return false, fmt.Errorf("failed to check existing job application: %w", err)
	}
	return count > 0, nil
}

func (r *JobApplicationRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.JobApplication, error) {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find job applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.JobApplication
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode job applications: %w", err)
	}

	return apps, nil
}

func (r *JobApplicationRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "jobId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
