package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"draws": {
			{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "name", Value: 1}}},
		},
		"sales": {
			// winner candidate query
			{Keys: bson.D{
				{Key: "businessId", Value: 1},
				{Key: "drawId", Value: 1},
				{Key: "scheduleSlugs", Value: 1},
				{Key: "createdAt", Value: 1},
			}},
			{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		"results": {
			{
				Keys: bson.D{
					{Key: "businessId", Value: 1},
					{Key: "drawId", Value: 1},
					{Key: "date", Value: 1},
					{Key: "scheduleSlug", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("result_slot_unique"),
			},
		},
		"payouts": {
			{Keys: bson.D{
				{Key: "businessId", Value: 1},
				{Key: "drawId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "scheduleSlug", Value: 1},
			}},
			{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "ticketId", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
