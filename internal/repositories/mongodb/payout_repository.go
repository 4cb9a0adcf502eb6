package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PayoutRepository implements the repositories.PayoutRepository interface
type PayoutRepository struct {
	collection *mongo.Collection
}

// NewPayoutRepository creates a new PayoutRepository
func NewPayoutRepository(db *mongo.Database) repositories.PayoutRepository {
	return &PayoutRepository{
		collection: db.Collection("payouts"),
	}
}

// FindByKey finds a payout record by its key
func (r *PayoutRepository) FindByKey(ctx context.Context, key string) (*models.PayoutStatus, error) {
	var payout models.PayoutStatus
	if err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&payout); err != nil {
		return nil, translate(err)
	}
	return &payout, nil
}

// Upsert updates the payout record for its key, or creates it if it doesn't exist.
func (r *PayoutRepository) Upsert(ctx context.Context, payout *models.PayoutStatus) error {
	now := time.Now()
	payout.UpdatedAt = now
	set := bson.M{
		"resultId":  payout.ResultID,
		"status":    payout.Status,
		"paid":      payout.Paid,
		"totalWin":  payout.TotalWin,
		"updatedAt": now,
	}
	if !payout.PaidAt.IsZero() {
		set["paidAt"] = payout.PaidAt
	}
	if !payout.ReversedAt.IsZero() {
		set["reversedAt"] = payout.ReversedAt
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"businessId":    payout.BusinessID,
			"drawId":        payout.DrawID,
			"date":          payout.Date,
			"scheduleLabel": payout.ScheduleLabel,
			"scheduleSlug":  payout.ScheduleSlug,
			"ticketId":      payout.TicketID,
			"createdAt":     now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": payout.Key}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert payout %s: %w", payout.Key, err)
	}
	return nil
}

// FindBySlot lists the payout records of one result slot
func (r *PayoutRepository) FindBySlot(ctx context.Context, businessID string, drawID primitive.ObjectID, date, slug string) ([]*models.PayoutStatus, error) {
	filter := bson.M{
		"businessId":   businessID,
		"drawId":       drawID,
		"date":         date,
		"scheduleSlug": slug,
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payouts []*models.PayoutStatus
	if err := cursor.All(ctx, &payouts); err != nil {
		return nil, err
	}
	if payouts == nil {
		payouts = []*models.PayoutStatus{}
	}
	return payouts, nil
}

// CountPaidByTicket counts the paid records of a ticket across all results
func (r *PayoutRepository) CountPaidByTicket(ctx context.Context, businessID, ticketID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"businessId": businessID,
		"ticketId":   ticketID,
		"status":     models.PayoutStatePaid,
	})
}

// CountBySlot counts the records of one result slot, optionally in a single status
func (r *PayoutRepository) CountBySlot(ctx context.Context, businessID string, drawID primitive.ObjectID, date, slug string, status models.PayoutState) (int64, error) {
	filter := bson.M{
		"businessId":   businessID,
		"drawId":       drawID,
		"date":         date,
		"scheduleSlug": slug,
	}
	if status != "" {
		filter["status"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}
