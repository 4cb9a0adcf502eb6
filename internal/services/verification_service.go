package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// VerificationServiceImpl implements VerificationService
type VerificationServiceImpl struct {
	indexRepo    repositories.TicketIndexRepository
	saleRepo     repositories.SaleRepository
	businessRepo repositories.BusinessRepository
	drawRepo     repositories.DrawRepository
}

var _ VerificationService = (*VerificationServiceImpl)(nil)

// NewVerificationService creates a new VerificationServiceImpl
func NewVerificationService(
	indexRepo repositories.TicketIndexRepository,
	saleRepo repositories.SaleRepository,
	businessRepo repositories.BusinessRepository,
	drawRepo repositories.DrawRepository,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		indexRepo:    indexRepo,
		saleRepo:     saleRepo,
		businessRepo: businessRepo,
		drawRepo:     drawRepo,
	}
}

// VerifyTicket looks a ticket up through the global index and returns its public view.
// Client contact details are never part of the answer.
func (s *VerificationServiceImpl) VerifyTicket(ctx context.Context, rawTicketID string) (*models.PublicTicket, error) {
	ticketID, err := utils.NormalizeTicketID(rawTicketID)
	if err != nil {
		return nil, notFoundError("ticket")
	}

	entry, err := s.indexRepo.FindByTicketID(ctx, ticketID)
	if isNotFound(err) {
		return nil, notFoundError("ticket %s", ticketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up ticket %s: %w", ticketID, err)
	}

	sale, err := s.saleRepo.FindByID(ctx, entry.BusinessID, entry.SaleID)
	if isNotFound(err) {
		// index entry outlived its sale
		slog.Warn("Ticket index points to a missing sale", "ticketID", ticketID, "businessID", entry.BusinessID, "saleID", entry.SaleID.Hex())
		return nil, notFoundError("ticket %s", ticketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sale of ticket %s: %w", ticketID, err)
	}

	ticket := &models.PublicTicket{
		TicketID:       sale.TicketID,
		ScheduleLabels: sale.ScheduleLabels,
		Lines:          sale.Lines,
		TotalCost:      sale.TotalCost,
		CreatedAt:      sale.CreatedAt,
	}
	if business, err := s.businessRepo.FindByID(ctx, entry.BusinessID); err == nil {
		ticket.BusinessName = business.Name
		ticket.LogoURL = business.LogoURL
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to load business of ticket %s: %w", ticketID, err)
	}
	if draw, err := s.drawRepo.FindByID(ctx, entry.BusinessID, sale.DrawID); err == nil {
		ticket.DrawName = draw.Name
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to load draw of ticket %s: %w", ticketID, err)
	}
	return ticket, nil
}
