package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// DefaultDeleteBatchSize is used when no positive batch size is configured
const DefaultDeleteBatchSize = 100

// MaintenanceServiceImpl implements MaintenanceService
type MaintenanceServiceImpl struct {
	saleRepo   repositories.SaleRepository
	indexRepo  repositories.TicketIndexRepository
	resultRepo repositories.ResultRepository
	batchSize  int
}

var _ MaintenanceService = (*MaintenanceServiceImpl)(nil)

// NewMaintenanceService creates a new MaintenanceServiceImpl
func NewMaintenanceService(
	saleRepo repositories.SaleRepository,
	indexRepo repositories.TicketIndexRepository,
	resultRepo repositories.ResultRepository,
	batchSize int,
) *MaintenanceServiceImpl {
	if batchSize <= 0 {
		batchSize = DefaultDeleteBatchSize
	}
	return &MaintenanceServiceImpl{
		saleRepo:   saleRepo,
		indexRepo:  indexRepo,
		resultRepo: resultRepo,
		batchSize:  batchSize,
	}
}

// PurgeSales deletes every sale of a business and its ticket index entries.
// It stops at the first failing batch; the returned result then holds what
// was already committed and the error must be treated as an overall failure.
func (s *MaintenanceServiceImpl) PurgeSales(ctx context.Context, businessID string) (*models.BulkDeleteResult, error) {
	res := &models.BulkDeleteResult{}
	for {
		batch, err := s.saleRepo.FindBatch(ctx, businessID, s.batchSize)
		if err != nil {
			return res, s.batchFailed("sales", businessID, res, err)
		}
		if len(batch) == 0 {
			return res, nil
		}

		ids := make([]primitive.ObjectID, 0, len(batch))
		tickets := make([]string, 0, len(batch))
		for _, sale := range batch {
			ids = append(ids, sale.ID)
			tickets = append(tickets, sale.TicketID)
		}
		// Sales before index entries, so every sale that survives a failure stays verifiable.
		deleted, err := s.saleRepo.DeleteMany(ctx, businessID, ids)
		if err != nil {
			return res, s.batchFailed("sales", businessID, res, err)
		}
		if deleted == 0 {
			return res, s.batchFailed("sales", businessID, res, fmt.Errorf("batch of %d sales deleted nothing", len(ids)))
		}
		res.Deleted += int(deleted)
		if _, err := s.indexRepo.DeleteMany(ctx, tickets); err != nil {
			return res, s.batchFailed("sales", businessID, res, fmt.Errorf("ticket index cleanup: %w", err))
		}
		res.Batches++
	}
}

// PurgeResults deletes every result of a business. Payout records are kept:
// they are keyed by slot, and a result entered again must not reopen paid tickets.
func (s *MaintenanceServiceImpl) PurgeResults(ctx context.Context, businessID string) (*models.BulkDeleteResult, error) {
	res := &models.BulkDeleteResult{}
	for {
		ids, err := s.resultRepo.FindBatchIDs(ctx, businessID, s.batchSize)
		if err != nil {
			return res, s.batchFailed("results", businessID, res, err)
		}
		if len(ids) == 0 {
			return res, nil
		}
		deleted, err := s.resultRepo.DeleteMany(ctx, businessID, ids)
		if err != nil {
			return res, s.batchFailed("results", businessID, res, err)
		}
		if deleted == 0 {
			return res, s.batchFailed("results", businessID, res, fmt.Errorf("batch of %d results deleted nothing", len(ids)))
		}
		res.Deleted += int(deleted)
		res.Batches++
	}
}

func (s *MaintenanceServiceImpl) batchFailed(kind, businessID string, res *models.BulkDeleteResult, err error) error {
	slog.Error("Bulk delete aborted", "error", err, "kind", kind, "businessID", businessID,
		"batch", res.Batches+1, "alreadyDeleted", res.Deleted)
	return fmt.Errorf("bulk delete of %s failed at batch %d: %w", kind, res.Batches+1, err)
}
