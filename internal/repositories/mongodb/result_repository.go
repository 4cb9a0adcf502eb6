package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepository implements the repositories.ResultRepository interface
type ResultRepository struct {
	collection *mongo.Collection
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *mongo.Database) repositories.ResultRepository {
	return &ResultRepository{
		collection: db.Collection("results"),
	}
}

// Create inserts a result. A second result for the same slot fails with ErrDuplicate.
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	now := time.Now()
	result.CreatedAt = now
	result.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, result)
	if err != nil {
		return translate(err)
	}
	result.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a result by ID within a business
func (r *ResultRepository) FindByID(ctx context.Context, businessID string, id primitive.ObjectID) (*models.Result, error) {
	var result models.Result
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "businessId": businessID}).Decode(&result); err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

// FindByDate lists the results of a calendar day
func (r *ResultRepository) FindByDate(ctx context.Context, businessID string, date string) ([]*models.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "drawId", Value: 1}, {Key: "scheduleSlug", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"businessId": businessID, "date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*models.Result
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.Result{}
	}
	return results, nil
}

// FindBySlot finds the result for a draw, date and schedule
func (r *ResultRepository) FindBySlot(ctx context.Context, businessID string, drawID primitive.ObjectID, date, slug string) (*models.Result, error) {
	filter := bson.M{
		"businessId":   businessID,
		"drawId":       drawID,
		"date":         date,
		"scheduleSlug": slug,
	}
	var result models.Result
	if err := r.collection.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

// CountByDraw counts the results referencing a draw
func (r *ResultRepository) CountByDraw(ctx context.Context, businessID string, drawID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"businessId": businessID, "drawId": drawID})
}

// Update replaces a result
func (r *ResultRepository) Update(ctx context.Context, result *models.Result) error {
	result.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": result.ID, "businessId": result.BusinessID}, result)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a result
func (r *ResultRepository) Delete(ctx context.Context, businessID string, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "businessId": businessID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// FindBatchIDs returns up to limit result ids of a business
func (r *ResultRepository) FindBatchIDs(ctx context.Context, businessID string, limit int) ([]primitive.ObjectID, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// DeleteMany deletes the given results of a business
func (r *ResultRepository) DeleteMany(ctx context.Context, businessID string, ids []primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"businessId": businessID, "_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
