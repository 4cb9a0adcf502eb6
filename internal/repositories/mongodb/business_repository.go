package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BusinessRepository implements repositories.BusinessRepository
type BusinessRepository struct {
	collection *mongo.Collection
}

// NewBusinessRepository creates a new BusinessRepository
func NewBusinessRepository(db *mongo.Database) repositories.BusinessRepository {
	return &BusinessRepository{
		collection: db.Collection("businesses"),
	}
}

// FindByID retrieves a business profile
func (r *BusinessRepository) FindByID(ctx context.Context, id string) (*models.Business, error) {
	var business models.Business
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&business); err != nil {
		return nil, translate(err)
	}
	return &business, nil
}

// GetOrCreate retrieves the business profile, creating a default one if none exists
func (r *BusinessRepository) GetOrCreate(ctx context.Context, id string) (*models.Business, error) {
	business, err := r.FindByID(ctx, id)
	if err == nil {
		return business, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	business = &models.Business{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = r.collection.InsertOne(ctx, business)
	if mongo.IsDuplicateKeyError(err) {
		// created concurrently by another request
		return r.FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return business, nil
}

// Update writes the editable profile fields, creating the profile if needed
func (r *BusinessRepository) Update(ctx context.Context, business *models.Business) error {
	now := time.Now()
	business.UpdatedAt = now
	update := bson.M{
		"$set": bson.M{
			"name":              business.Name,
			"logoUrl":           business.LogoURL,
			"commissionPercent": business.CommissionPercent,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": business.ID}, update, options.Update().SetUpsert(true))
	return err
}
