package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches the lookup
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index
	ErrDuplicate = errors.New("duplicate document")
)

// BusinessRepository defines the interface for business profile operations
type BusinessRepository interface {
	FindByID(ctx context.Context, id string) (*models.Business, error)
	// GetOrCreate returns the profile, inserting an empty default on first access
	GetOrCreate(ctx context.Context, id string) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
}

// DrawRepository defines the interface for draw data operations
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, businessID string, id primitive.ObjectID) (*models.Draw, error)
	FindAll(ctx context.Context, businessID string) ([]*models.Draw, error)
	Update(ctx context.Context, draw *models.Draw) error
	Delete(ctx context.Context, businessID string, id primitive.ObjectID) error
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, businessID string, id primitive.ObjectID) (*models.Sale, error)
	// FindByCreatedRange lists sales with createdAt in [start, end), optionally for one draw
	FindByCreatedRange(ctx context.Context, businessID string, drawID *primitive.ObjectID, start, end time.Time) ([]*models.Sale, error)
	// FindCandidates is the indexed winner query: draw, schedule slug and [start, end)
	FindCandidates(ctx context.Context, businessID string, drawID primitive.ObjectID, slug string, start, end time.Time) ([]*models.Sale, error)
	// FindByDraw returns every sale of a draw; used as the fallback scan
	FindByDraw(ctx context.Context, businessID string, drawID primitive.ObjectID) ([]*models.Sale, error)
	CountByDraw(ctx context.Context, businessID string, drawID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, businessID string, id primitive.ObjectID) error
	// FindBatch returns up to limit sales with only _id and ticketId populated
	FindBatch(ctx context.Context, businessID string, limit int) ([]*models.Sale, error)
	DeleteMany(ctx context.Context, businessID string, ids []primitive.ObjectID) (int64, error)
}

// TicketIndexRepository defines the interface for the global ticket lookup
type TicketIndexRepository interface {
	Create(ctx context.Context, entry *models.TicketIndex) error
	FindByTicketID(ctx context.Context, ticketID string) (*models.TicketIndex, error)
	Delete(ctx context.Context, ticketID string) error
	DeleteMany(ctx context.Context, ticketIDs []string) (int64, error)
}

// ResultRepository defines the interface for result data operations
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	FindByID(ctx context.Context, businessID string, id primitive.ObjectID) (*models.Result, error)
	FindByDate(ctx context.Context, businessID string, date string) ([]*models.Result, error)
	// FindBySlot finds the result of a draw, date and schedule slug, if any
	FindBySlot(ctx context.Context, businessID string, drawID primitive.ObjectID, date, slug string) (*models.Result, error)
	CountByDraw(ctx context.Context, businessID string, drawID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, businessID string, id primitive.ObjectID) error
	FindBatchIDs(ctx context.Context, businessID string, limit int) ([]primitive.ObjectID, error)
	DeleteMany(ctx context.Context, businessID string, ids []primitive.ObjectID) (int64, error)
}

// PayoutRepository defines the interface for payout status operations
type PayoutRepository interface {
	FindByKey(ctx context.Context, key string) (*models.PayoutStatus, error)
	// Upsert writes the record by key, keeping the original createdAt
	Upsert(ctx context.Context, payout *models.PayoutStatus) error
	FindBySlot(ctx context.Context, businessID string, drawID primitive.ObjectID, date, slug string) ([]*models.PayoutStatus, error)
	CountPaidByTicket(ctx context.Context, businessID, ticketID string) (int64, error)
	// CountBySlot counts the records of a result slot, only those in status when it is not empty.
	// Records are keyed by slot and outlive the result that produced them.
	CountBySlot(ctx context.Context, businessID string, drawID primitive.ObjectID, date, slug string, status models.PayoutState) (int64, error)
}
