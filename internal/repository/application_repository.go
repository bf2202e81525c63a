package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"career-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrTransitionConflict means an application in the transition set was no
// longer pending when the commit ran. The whole transaction is rolled back,
// nothing is applied, and the caller may retry.
var ErrTransitionConflict = errors.New("application no longer pending")

type ApplicationRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{
		collection: db.Collection("Application"),
		mu:         &sync.Mutex{},
	}
}

func (r *ApplicationRepository) New(ctx context.Context, app *models.Application) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if app.ID.IsZero() {
		app.ID = bson.NewObjectID()
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if app.SubmittedAt == 0 {
		app.SubmittedAt = int(time.Now().Unix())
	}

	_, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}
	return app, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, studentID, institutionID, courseID string) (bool, error) {
	filter := bson.M{
		"studentId":     studentID,
		"institutionId": institutionID,
	}
	if courseID != "" {
		filter["courseId"] = courseID
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return count > 0, nil
}

// FindPendingByInstitution returns the pending applications for one
// institution ordered by submission time then id, so the admissions sort
// breaks score ties the same way on every run.
func (r *ApplicationRepository) FindPendingByInstitution(ctx context.Context, institutionID string) ([]models.Application, error) {
	filter := bson.M{
		"institutionId": institutionID,
		"status":        models.StatusPending,
	}

	opts := options.Find()
	opts.SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}

	return apps, nil
}

func (r *ApplicationRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.Application, error) {
	return r.find(ctx, bson.M{"studentId": studentID})
}

func (r *ApplicationRepository) FindByInstitutionID(ctx context.Context, institutionID string) ([]models.Application, error) {
	return r.find(ctx, bson.M{"institutionId": institutionID})
}

func (r *ApplicationRepository) find(ctx context.Context, filter bson.M) ([]models.Application, error) {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}

	return apps, nil
}

// ApplyTransitions commits every status change of one admissions run inside
// a single transaction. Each update only matches documents still pending,
// so a concurrent run for the same institution either sees this run's
// committed result or conflicts and rolls back entirely. Partial admission
// is never visible to readers.
func (r *ApplicationRepository) ApplyTransitions(ctx context.Context, transitions []models.StatusTransition) error {
	if len(transitions) == 0 {
		return nil
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		now := int(time.Now().Unix())

		for _, transition := range transitions {
			update := bson.M{"$set": bson.M{"status": transition.NewStatus}}
			if transition.NewStatus == models.StatusAdmitted {
				update = bson.M{"$set": bson.M{"status": transition.NewStatus, "admittedAt": now}}
			}

			filter := bson.M{
				"_id":    transition.ApplicationID,
				"status": models.StatusPending,
			}

			result, err := r.collection.UpdateOne(ctx, filter, update)
			if err != nil {
				return nil, fmt.Errorf("failed to update application %s: %w", transition.ApplicationID.Hex(), err)
			}
			if result.MatchedCount == 0 {
				return nil, fmt.Errorf("application %s: %w", transition.ApplicationID.Hex(), ErrTransitionConflict)
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit admission transitions: %w", err)
	}

	return nil
}

// SyncStudentName rewrites the denormalized student name on every
// application of one student. Running it twice is a no-op.
func (r *ApplicationRepository) SyncStudentName(ctx context.Context, studentID, displayName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := bson.M{
		"studentId":   studentID,
		"studentName": bson.M{"$ne": displayName},
	}
	update := bson.M{"$set": bson.M{"studentName": displayName}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to sync student name: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *ApplicationRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "studentId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "submittedAt", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
