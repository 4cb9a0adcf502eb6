package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// winnerResolver loads the candidate sales of a result and runs the winner engine
type winnerResolver struct {
	drawRepo repositories.DrawRepository
	saleRepo repositories.SaleRepository
	loc      *time.Location
}

// resolve returns the result's draw and winners. Candidates come from the
// indexed query; if it fails, every sale of the draw is scanned with the same
// day window and schedule filter.
func (r *winnerResolver) resolve(ctx context.Context, result *models.Result) (*models.Draw, []models.Winner, error) {
	draw, err := r.drawRepo.FindByID(ctx, result.BusinessID, result.DrawID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load draw %s of result %s: %w", result.DrawID.Hex(), result.ID.Hex(), err)
	}
	start, end, err := utils.DayWindow(result.Date, r.loc)
	if err != nil {
		return nil, nil, fmt.Errorf("result %s has an invalid date %q: %w", result.ID.Hex(), result.Date, err)
	}
	slug := resultSlug(result)

	sales, err := r.saleRepo.FindCandidates(ctx, result.BusinessID, result.DrawID, slug, start, end)
	if err != nil {
		slog.Warn("Indexed candidate query failed, scanning draw sales", "error", err,
			"businessID", result.BusinessID, "resultID", result.ID.Hex())
		all, scanErr := r.saleRepo.FindByDraw(ctx, result.BusinessID, result.DrawID)
		if scanErr != nil {
			slog.Error("Fallback candidate scan failed", "error", scanErr,
				"businessID", result.BusinessID, "resultID", result.ID.Hex())
			return nil, nil, fmt.Errorf("failed to load sales for result %s: %w", result.ID.Hex(), scanErr)
		}
		sales = make([]*models.Sale, 0, len(all))
		for _, sale := range all {
			if utils.InWindow(sale.CreatedAt, start, end) && SaleHasSchedule(sale, slug) {
				sales = append(sales, sale)
			}
		}
	}
	return draw, ResolveWinners(result, draw, sales), nil
}

// loadPaidMap maps ticket id to paid for every payout record of the result's slot
func loadPaidMap(ctx context.Context, payoutRepo repositories.PayoutRepository, result *models.Result) (map[string]bool, error) {
	slug := resultSlug(result)
	payouts, err := payoutRepo.FindBySlot(ctx, result.BusinessID, result.DrawID, result.Date, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load payouts of result %s: %w", result.ID.Hex(), err)
	}
	paid := make(map[string]bool, len(payouts))
	for _, p := range payouts {
		paid[p.TicketID] = p.Status == models.PayoutStatePaid
	}
	return paid, nil
}

// PayoutServiceImpl implements the PayoutService interface
type PayoutServiceImpl struct {
	resultRepo repositories.ResultRepository
	payoutRepo repositories.PayoutRepository
	resolver   *winnerResolver
	now        func() time.Time
}

var _ PayoutService = (*PayoutServiceImpl)(nil)

// NewPayoutService creates a new PayoutServiceImpl
func NewPayoutService(
	resultRepo repositories.ResultRepository,
	drawRepo repositories.DrawRepository,
	saleRepo repositories.SaleRepository,
	payoutRepo repositories.PayoutRepository,
	loc *time.Location,
) *PayoutServiceImpl {
	return &PayoutServiceImpl{
		resultRepo: resultRepo,
		payoutRepo: payoutRepo,
		resolver:   &winnerResolver{drawRepo: drawRepo, saleRepo: saleRepo, loc: loc},
		now:        time.Now,
	}
}

// GetWinners resolves the winners of a result with their paid status and total payout
func (s *PayoutServiceImpl) GetWinners(ctx context.Context, businessID, resultID string) (*models.WinnersReport, error) {
	result, err := s.loadResult(ctx, businessID, resultID)
	if err != nil {
		return nil, err
	}
	draw, winners, err := s.resolver.resolve(ctx, result)
	if err != nil {
		return nil, err
	}
	paid, err := s.LoadPaidMap(ctx, result)
	if err != nil {
		return nil, err
	}
	return &models.WinnersReport{
		Result:      result,
		DrawName:    draw.Name,
		Winners:     winners,
		PaidMap:     paid,
		TotalPayout: ComputeTotalPayout(winners),
	}, nil
}

// LoadPaidMap returns ticket id -> paid for a result
func (s *PayoutServiceImpl) LoadPaidMap(ctx context.Context, result *models.Result) (map[string]bool, error) {
	return loadPaidMap(ctx, s.payoutRepo, result)
}

// MarkPaid records that a winning ticket was paid. The ticket must be a winner
// of the result as recomputed now; paying twice leaves the first record untouched.
func (s *PayoutServiceImpl) MarkPaid(ctx context.Context, businessID, resultID, ticketID string) (*models.PayoutStatus, error) {
	result, winner, err := s.findWinner(ctx, businessID, resultID, ticketID)
	if err != nil {
		return nil, err
	}
	key := BuildPayoutKey(result.DrawID, result.Date, result.ScheduleLabel, winner.TicketID)

	existing, err := s.payoutRepo.FindByKey(ctx, key)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to load payout %s: %w", key, err)
	}
	if existing != nil && existing.Status == models.PayoutStatePaid {
		return existing, nil
	}

	payout := existing
	if payout == nil {
		payout = newPayout(key, result, winner.TicketID)
	}
	payout.ResultID = result.ID
	payout.Status = models.PayoutStatePaid
	payout.Paid = true
	payout.PaidAt = s.now()
	payout.TotalWin = winner.TotalWin

	if err := s.payoutRepo.Upsert(ctx, payout); err != nil {
		slog.Error("Failed to mark ticket as paid", "error", err, "businessID", businessID, "resultID", resultID, "ticketID", winner.TicketID)
		return nil, fmt.Errorf("failed to mark ticket %s as paid: %w", winner.TicketID, err)
	}
	return payout, nil
}

// ReversePayout undoes a payment. Only a paid record can be reversed.
func (s *PayoutServiceImpl) ReversePayout(ctx context.Context, businessID, resultID, ticketID string) (*models.PayoutStatus, error) {
	result, err := s.loadResult(ctx, businessID, resultID)
	if err != nil {
		return nil, err
	}
	ticketID = strings.TrimSpace(ticketID)

	payouts, err := s.payoutRepo.FindBySlot(ctx, businessID, result.DrawID, result.Date, resultSlug(result))
	if err != nil {
		return nil, fmt.Errorf("failed to load payouts of result %s: %w", resultID, err)
	}
	var payout *models.PayoutStatus
	for _, p := range payouts {
		if strings.EqualFold(p.TicketID, ticketID) {
			payout = p
			break
		}
	}
	if payout == nil {
		return nil, conflictError("ticket %s has not been paid", ticketID)
	}
	if payout.Status != models.PayoutStatePaid {
		return nil, conflictError("ticket %s is %s, only paid tickets can be reversed", ticketID, payout.Status)
	}

	payout.Status = models.PayoutStateReversed
	payout.Paid = false
	payout.ReversedAt = s.now()
	if err := s.payoutRepo.Upsert(ctx, payout); err != nil {
		slog.Error("Failed to reverse payout", "error", err, "businessID", businessID, "resultID", resultID, "ticketID", ticketID)
		return nil, fmt.Errorf("failed to reverse payout of ticket %s: %w", ticketID, err)
	}
	return payout, nil
}

func (s *PayoutServiceImpl) loadResult(ctx context.Context, businessID, resultID string) (*models.Result, error) {
	id, err := pathID("result", resultID)
	if err != nil {
		return nil, err
	}
	result, err := s.resultRepo.FindByID(ctx, businessID, id)
	if isNotFound(err) {
		return nil, notFoundError("result %s", resultID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result %s: %w", resultID, err)
	}
	return result, nil
}

func (s *PayoutServiceImpl) findWinner(ctx context.Context, businessID, resultID, ticketID string) (*models.Result, *models.Winner, error) {
	result, err := s.loadResult(ctx, businessID, resultID)
	if err != nil {
		return nil, nil, err
	}
	_, winners, err := s.resolver.resolve(ctx, result)
	if err != nil {
		return nil, nil, err
	}
	ticketID = strings.TrimSpace(ticketID)
	for i := range winners {
		if strings.EqualFold(winners[i].TicketID, ticketID) {
			return result, &winners[i], nil
		}
	}
	return nil, nil, notFoundError("ticket %s is not a winner of result %s", ticketID, resultID)
}

func newPayout(key string, result *models.Result, ticketID string) *models.PayoutStatus {
	slug := resultSlug(result)
	return &models.PayoutStatus{
		Key:           key,
		BusinessID:    result.BusinessID,
		ResultID:      result.ID,
		DrawID:        result.DrawID,
		Date:          result.Date,
		ScheduleLabel: result.ScheduleLabel,
		ScheduleSlug:  slug,
		TicketID:      ticketID,
		Status:        models.PayoutStateUnpaid,
	}
}
