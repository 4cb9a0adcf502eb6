package services

import (
	"context"

	"github.com/ArowuTest/sorteos-backend/internal/models"
)

// BusinessService defines the interface for the business profile
type BusinessService interface {
	// GetBusiness returns the profile, creating a default one on first access
	GetBusiness(ctx context.Context, businessID string) (*models.Business, error)
	UpdateBusiness(ctx context.Context, businessID string, req *models.BusinessRequest) (*models.Business, error)
}

// DrawService defines the interface for draw-related operations
type DrawService interface {
	CreateDraw(ctx context.Context, businessID string, req *models.DrawRequest) (*models.Draw, error)
	GetDraw(ctx context.Context, businessID, drawID string) (*models.Draw, error)
	ListDraws(ctx context.Context, businessID string) ([]*models.Draw, error)
	UpdateDraw(ctx context.Context, businessID, drawID string, req *models.DrawRequest) (*models.Draw, error)
	// DeleteDraw fails with ErrConflict while any sale or result references the draw
	DeleteDraw(ctx context.Context, businessID, drawID string) error
}

// SaleService defines the interface for ticket sales
type SaleService interface {
	CreateSale(ctx context.Context, businessID string, req *models.SaleRequest) (*models.Sale, error)
	GetSale(ctx context.Context, businessID, saleID string) (*models.Sale, error)
	// ListSales returns the sales of a calendar day, optionally for one draw
	ListSales(ctx context.Context, businessID, date, drawID string) ([]*models.Sale, error)
	UpdateSale(ctx context.Context, businessID, saleID string, req *models.SaleRequest) (*models.Sale, error)
	DeleteSale(ctx context.Context, businessID, saleID string) error
}

// ResultService defines the interface for recorded draw results
type ResultService interface {
	CreateResult(ctx context.Context, businessID string, req *models.ResultRequest) (*models.Result, error)
	GetResult(ctx context.Context, businessID, resultID string) (*models.Result, error)
	ListResults(ctx context.Context, businessID, date string) ([]*models.Result, error)
	UpdateResult(ctx context.Context, businessID, resultID string, req *models.ResultRequest) (*models.Result, error)
	DeleteResult(ctx context.Context, businessID, resultID string) error
}

// PayoutService resolves winners and tracks which of them were paid
type PayoutService interface {
	GetWinners(ctx context.Context, businessID, resultID string) (*models.WinnersReport, error)
	// MarkPaid is idempotent; paying an already paid ticket returns the existing record
	MarkPaid(ctx context.Context, businessID, resultID, ticketID string) (*models.PayoutStatus, error)
	ReversePayout(ctx context.Context, businessID, resultID, ticketID string) (*models.PayoutStatus, error)
	LoadPaidMap(ctx context.Context, result *models.Result) (map[string]bool, error)
}

// FinanceService defines the interface for commission and prize summaries
type FinanceService interface {
	GetDailySummary(ctx context.Context, businessID, date string) (*models.DailySummary, error)
	GetRangeSummary(ctx context.Context, businessID, from, to string) ([]*models.DailySummary, error)
}

// VerificationService answers public ticket lookups
type VerificationService interface {
	// VerifyTicket returns ErrNotFound for unknown and malformed ids alike
	VerifyTicket(ctx context.Context, rawTicketID string) (*models.PublicTicket, error)
}

// MaintenanceService bulk deletes tenant data in fixed size batches
type MaintenanceService interface {
	PurgeSales(ctx context.Context, businessID string) (*models.BulkDeleteResult, error)
	PurgeResults(ctx context.Context, businessID string) (*models.BulkDeleteResult, error)
}
