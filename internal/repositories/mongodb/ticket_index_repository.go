package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TicketIndexRepository implements repositories.TicketIndexRepository.
// The collection is shared by every business; _id is the ticket id.
type TicketIndexRepository struct {
	collection *mongo.Collection
}

// NewTicketIndexRepository creates a new TicketIndexRepository
func NewTicketIndexRepository(db *mongo.Database) repositories.TicketIndexRepository {
	return &TicketIndexRepository{
		collection: db.Collection("ticket_index"),
	}
}

// Create writes an index entry
func (r *TicketIndexRepository) Create(ctx context.Context, entry *models.TicketIndex) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return translate(err)
}

// FindByTicketID looks up a normalized ticket id
func (r *TicketIndexRepository) FindByTicketID(ctx context.Context, ticketID string) (*models.TicketIndex, error) {
	var entry models.TicketIndex
	if err := r.collection.FindOne(ctx, bson.M{"_id": ticketID}).Decode(&entry); err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// Delete removes an index entry
func (r *TicketIndexRepository) Delete(ctx context.Context, ticketID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": ticketID})
	return err
}

// DeleteMany removes the index entries of the given tickets
func (r *TicketIndexRepository) DeleteMany(ctx context.Context, ticketIDs []string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ticketIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
