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

type ProfileRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("StudentProfile"),
		mu:         &sync.Mutex{},
	}
}

func (r *ProfileRepository) New(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if profile.Metadata.CreatedAt == 0 {
		profile.Metadata.CreatedAt = currentTime
	}
	profile.Metadata.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAll returns the full student population, ordered by creation time.
// The candidate ranker scores the whole set in memory, so there is no
// pagination here.
func (r *ProfileRepository) FindAll(ctx context.Context) ([]*models.StudentProfile, error) {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "metadata.createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.StudentProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	return profiles, nil
}

// AppendAcademicRecord adds one record to the end of the academic history.
// Profile lists are append-only.
func (r *ProfileRepository) AppendAcademicRecord(ctx context.Context, userID string, record models.AcademicRecord) error {
	return r.push(ctx, userID, "academicRecords", record)
}

func (r *ProfileRepository) AppendCertificate(ctx context.Context, userID string, certificate models.Certificate) error {
	return r.push(ctx, userID, "certificates", certificate)
}

func (r *ProfileRepository) AppendWorkExperience(ctx context.Context, userID string, experience models.WorkExperience) error {
	return r.push(ctx, userID, "workExperience", experience)
}

func (r *ProfileRepository) AppendSkill(ctx context.Context, userID string, skill string) error {
	return r.push(ctx, userID, "skills", skill)
}

func (r *ProfileRepository) RemoveSkill(ctx context.Context, userID string, skill string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	update := bson.M{
		"$pull": bson.M{"skills": skill},
		"$set":  bson.M{"metadata.updatedAt": int(time.Now().Unix())},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to remove skill: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProfileRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	update := bson.M{
		"$set": bson.M{
			"displayName":        displayName,
			"metadata.updatedAt": int(time.Now().Unix()),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProfileRepository) push(ctx context.Context, userID, field string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	update := bson.M{
		"$push": bson.M{field: value},
		"$set":  bson.M{"metadata.updatedAt": int(time.Now().Unix())},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "metadata.createdAt", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
