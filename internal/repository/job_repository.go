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

type JobRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{
		collection: db.Collection("JobPosting"),
		mu:         &sync.Mutex{},
	}
}

func (r *JobRepository) New(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID.IsZero() {
		job.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if job.Metadata.CreatedAt == 0 {
		job.Metadata.CreatedAt = currentTime
	}
	job.Metadata.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job posting: %w", err)
	}
	return job, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.JobPosting, error) {
	var job models.JobPosting
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) FindAll(ctx context.Context) ([]*models.JobPosting, error) {
	return r.find(ctx, bson.M{})
}

func (r *JobRepository) FindByCompanyID(ctx context.Context, companyID string) ([]*models.JobPosting, error) {
	return r.find(ctx, bson.M{"companyId": companyID})
}

func (r *JobRepository) find(ctx context.Context, filter bson.M) ([]*models.JobPosting, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"metadata.createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find job postings: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []*models.JobPosting
	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode job postings: %w", err)
	}

	return jobs, nil
}

func (r *JobRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "companyId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "metadata.createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
