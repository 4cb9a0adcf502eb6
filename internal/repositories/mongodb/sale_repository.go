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

// SaleRepository implements the repositories.SaleRepository interface
type SaleRepository struct {
	collection *mongo.Collection
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(db *mongo.Database) repositories.SaleRepository {
	return &SaleRepository{
		collection: db.Collection("sales"),
	}
}

// Create inserts a sale. CreatedAt is kept when the caller already set it.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	now := time.Now()
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = now
	}
	sale.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, sale)
	if err != nil {
		return translate(err)
	}
	sale.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a sale by ID within a business
func (r *SaleRepository) FindByID(ctx context.Context, businessID string, id primitive.ObjectID) (*models.Sale, error) {
	var sale models.Sale
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "businessId": businessID}).Decode(&sale)
	if err != nil {
		return nil, translate(err)
	}
	return &sale, nil
}

// FindByCreatedRange finds sales created in [start, end)
func (r *SaleRepository) FindByCreatedRange(ctx context.Context, businessID string, drawID *primitive.ObjectID, start, end time.Time) ([]*models.Sale, error) {
	filter := bson.M{
		"businessId": businessID,
		"createdAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	if drawID != nil {
		filter["drawId"] = *drawID
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// FindCandidates runs the indexed winner candidate query
func (r *SaleRepository) FindCandidates(ctx context.Context, businessID string, drawID primitive.ObjectID, slug string, start, end time.Time) ([]*models.Sale, error) {
	filter := bson.M{
		"businessId":    businessID,
		"drawId":        drawID,
		"scheduleSlugs": slug,
		"createdAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	return r.find(ctx, filter)
}

// FindByDraw finds every sale of a draw
func (r *SaleRepository) FindByDraw(ctx context.Context, businessID string, drawID primitive.ObjectID) ([]*models.Sale, error) {
	return r.find(ctx, bson.M{"businessId": businessID, "drawId": drawID})
}

// CountByDraw counts the sales referencing a draw
func (r *SaleRepository) CountByDraw(ctx context.Context, businessID string, drawID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"businessId": businessID, "drawId": drawID})
}

// Update replaces a sale
func (r *SaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	sale.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": sale.ID, "businessId": sale.BusinessID}, sale)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a sale
func (r *SaleRepository) Delete(ctx context.Context, businessID string, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "businessId": businessID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// FindBatch returns up to limit sales of a business, projected to _id and ticketId
func (r *SaleRepository) FindBatch(ctx context.Context, businessID string, limit int) ([]*models.Sale, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1, "ticketId": 1})
	return r.find(ctx, bson.M{"businessId": businessID}, opts)
}

// DeleteMany deletes the given sales of a business
func (r *SaleRepository) DeleteMany(ctx context.Context, businessID string, ids []primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"businessId": businessID, "_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SaleRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.Sale, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []*models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []*models.Sale{}
	}
	return sales, nil
}
