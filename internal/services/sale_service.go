package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// SaleServiceImpl implements the SaleService interface
type SaleServiceImpl struct {
	saleRepo   repositories.SaleRepository
	indexRepo  repositories.TicketIndexRepository
	drawRepo   repositories.DrawRepository
	payoutRepo repositories.PayoutRepository
	ticketIDs  TicketIDGenerator
	loc        *time.Location
	now        func() time.Time
}

var _ SaleService = (*SaleServiceImpl)(nil)

// NewSaleService creates a new SaleServiceImpl
func NewSaleService(
	saleRepo repositories.SaleRepository,
	indexRepo repositories.TicketIndexRepository,
	drawRepo repositories.DrawRepository,
	payoutRepo repositories.PayoutRepository,
	ticketIDs TicketIDGenerator,
	loc *time.Location,
) *SaleServiceImpl {
	return &SaleServiceImpl{
		saleRepo:   saleRepo,
		indexRepo:  indexRepo,
		drawRepo:   drawRepo,
		payoutRepo: payoutRepo,
		ticketIDs:  ticketIDs,
		loc:        loc,
		now:        time.Now,
	}
}

// CreateSale records a ticket and indexes it for public verification.
// If the index entry cannot be written the sale is removed again.
func (s *SaleServiceImpl) CreateSale(ctx context.Context, businessID string, req *models.SaleRequest) (*models.Sale, error) {
	sale, err := s.buildSale(ctx, businessID, req)
	if err != nil {
		return nil, err
	}
	sale.TicketID = s.ticketIDs.NewTicketID()
	sale.CreatedAt = s.now().In(s.loc)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		slog.Error("Failed to create sale", "error", err, "businessID", businessID, "ticketID", sale.TicketID)
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	entry := &models.TicketIndex{
		TicketID:   sale.TicketID,
		BusinessID: businessID,
		SaleID:     sale.ID,
		CreatedAt:  sale.CreatedAt,
	}
	if err := s.indexRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to index ticket, rolling back sale", "error", err, "businessID", businessID, "ticketID", sale.TicketID)
		if delErr := s.saleRepo.Delete(ctx, businessID, sale.ID); delErr != nil {
			slog.Error("Failed to roll back unindexed sale", "error", delErr, "businessID", businessID, "saleID", sale.ID.Hex())
		}
		return nil, fmt.Errorf("failed to index ticket %s: %w", sale.TicketID, err)
	}
	return sale, nil
}

// GetSale retrieves a sale by its ID
func (s *SaleServiceImpl) GetSale(ctx context.Context, businessID, saleID string) (*models.Sale, error) {
	id, err := pathID("sale", saleID)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindByID(ctx, businessID, id)
	if isNotFound(err) {
		return nil, notFoundError("sale %s", saleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sale %s: %w", saleID, err)
	}
	return sale, nil
}

// ListSales lists the sales made on a calendar day
func (s *SaleServiceImpl) ListSales(ctx context.Context, businessID, date, drawID string) ([]*models.Sale, error) {
	start, end, err := utils.DayWindow(date, s.loc)
	if err != nil {
		return nil, validationError("date must be YYYY-MM-DD")
	}
	var drawFilter *primitive.ObjectID
	if drawID != "" {
		id, err := bodyID("drawId", drawID)
		if err != nil {
			return nil, err
		}
		drawFilter = &id
	}
	sales, err := s.saleRepo.FindByCreatedRange(ctx, businessID, drawFilter, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// UpdateSale replaces the contents of a sale that has not been paid out
func (s *SaleServiceImpl) UpdateSale(ctx context.Context, businessID, saleID string, req *models.SaleRequest) (*models.Sale, error) {
	existing, err := s.GetSale(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotPaid(ctx, existing); err != nil {
		return nil, err
	}

	sale, err := s.buildSale(ctx, businessID, req)
	if err != nil {
		return nil, err
	}
	sale.ID = existing.ID
	sale.TicketID = existing.TicketID
	sale.CreatedAt = existing.CreatedAt

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		if isNotFound(err) {
			return nil, notFoundError("sale %s", saleID)
		}
		slog.Error("Failed to update sale", "error", err, "businessID", businessID, "saleID", saleID)
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return sale, nil
}

// DeleteSale deletes a sale that has not been paid out, then its index entry
func (s *SaleServiceImpl) DeleteSale(ctx context.Context, businessID, saleID string) error {
	sale, err := s.GetSale(ctx, businessID, saleID)
	if err != nil {
		return err
	}
	if err := s.ensureNotPaid(ctx, sale); err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, businessID, sale.ID); err != nil {
		if isNotFound(err) {
			return notFoundError("sale %s", saleID)
		}
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if err := s.indexRepo.Delete(ctx, sale.TicketID); err != nil {
		slog.Error("Failed to remove ticket index entry", "error", err, "businessID", businessID, "ticketID", sale.TicketID)
	}
	return nil
}

func (s *SaleServiceImpl) ensureNotPaid(ctx context.Context, sale *models.Sale) error {
	paid, err := s.payoutRepo.CountPaidByTicket(ctx, sale.BusinessID, sale.TicketID)
	if err != nil {
		return fmt.Errorf("failed to check payouts of ticket %s: %w", sale.TicketID, err)
	}
	if paid > 0 {
		return conflictError("ticket %s has been paid out", sale.TicketID)
	}
	return nil
}

// buildSale validates a request against its draw and returns the normalized sale
func (s *SaleServiceImpl) buildSale(ctx context.Context, businessID string, req *models.SaleRequest) (*models.Sale, error) {
	drawID, err := bodyID("drawId", req.DrawID)
	if err != nil {
		return nil, err
	}
	draw, err := s.drawRepo.FindByID(ctx, businessID, drawID)
	if isNotFound(err) {
		return nil, validationError("draw %s does not exist", req.DrawID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draw %s: %w", req.DrawID, err)
	}

	if len(req.ScheduleLabels) == 0 {
		return nil, validationError("at least one schedule is required")
	}
	var labels, slugs []string
	seen := make(map[string]bool)
	for _, raw := range req.ScheduleLabels {
		label, slug, ok := drawSchedule(draw, raw)
		if !ok {
			return nil, validationError("schedule %q does not belong to draw %s", strings.TrimSpace(raw), draw.Name)
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		labels = append(labels, label)
		slugs = append(slugs, slug)
	}

	lines, err := normalizeLines(req.Lines, draw.NumberOfDigits)
	if err != nil {
		return nil, err
	}

	return &models.Sale{
		BusinessID:     businessID,
		DrawID:         draw.ID,
		ScheduleLabels: labels,
		ScheduleSlugs:  slugs,
		Lines:          lines,
		TotalCost:      TotalCost(lines, draw.CostPerFraction, len(labels)),
		ClientName:     strings.TrimSpace(req.ClientName),
		ClientPhone:    strings.TrimSpace(req.ClientPhone),
	}, nil
}

func normalizeLines(in []models.SaleLine, digits int) ([]models.SaleLine, error) {
	if len(in) == 0 {
		return nil, validationError("at least one line is required")
	}
	lines := make([]models.SaleLine, 0, len(in))
	for i, line := range in {
		number := strings.TrimSpace(line.Number)
		if !utils.IsDigits(number) || len(number) > digits {
			return nil, validationError("line %d: number must have 1 to %d digits", i+1, digits)
		}
		if line.Quantity <= 0 {
			return nil, validationError("line %d: quantity must be greater than zero", i+1)
		}
		lines = append(lines, models.SaleLine{
			Number:   utils.PadNumber(number, digits),
			Quantity: line.Quantity,
		})
	}
	return lines, nil
}

// TotalCost prices a ticket: every fraction of every line is played once per schedule
func TotalCost(lines []models.SaleLine, costPerFraction float64, schedules int) float64 {
	fractions := int64(0)
	for _, line := range lines {
		fractions += int64(line.Quantity)
	}
	total := decimal.NewFromFloat(costPerFraction).
		Mul(decimal.NewFromInt(fractions)).
		Mul(decimal.NewFromInt(int64(schedules))).
		Round(2)
	return total.InexactFloat64()
}
