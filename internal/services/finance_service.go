package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"github.com/shopspring/decimal"
)

// MaxSummaryDays bounds the range accepted by GetRangeSummary
const MaxSummaryDays = 31

var hundred = decimal.NewFromInt(100)

// FinanceServiceImpl implements the FinanceService interface
type FinanceServiceImpl struct {
	businessRepo repositories.BusinessRepository
	saleRepo     repositories.SaleRepository
	resultRepo   repositories.ResultRepository
	payoutRepo   repositories.PayoutRepository
	resolver     *winnerResolver
	loc          *time.Location
}

var _ FinanceService = (*FinanceServiceImpl)(nil)

// NewFinanceService creates a new FinanceServiceImpl
func NewFinanceService(
	businessRepo repositories.BusinessRepository,
	drawRepo repositories.DrawRepository,
	saleRepo repositories.SaleRepository,
	resultRepo repositories.ResultRepository,
	payoutRepo repositories.PayoutRepository,
	loc *time.Location,
) *FinanceServiceImpl {
	return &FinanceServiceImpl{
		businessRepo: businessRepo,
		saleRepo:     saleRepo,
		resultRepo:   resultRepo,
		payoutRepo:   payoutRepo,
		resolver:     &winnerResolver{drawRepo: drawRepo, saleRepo: saleRepo, loc: loc},
		loc:          loc,
	}
}

// GetDailySummary computes sales, commission and prizes for one calendar day.
// Prizes are the winnings of every result recorded for that day, priced at
// the draw's cost per fraction.
func (s *FinanceServiceImpl) GetDailySummary(ctx context.Context, businessID, date string) (*models.DailySummary, error) {
	start, end, err := utils.DayWindow(date, s.loc)
	if err != nil {
		return nil, validationError("date must be YYYY-MM-DD")
	}
	business, err := s.businessRepo.GetOrCreate(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", businessID, err)
	}
	return s.summarize(ctx, business, date, start, end)
}

// GetRangeSummary returns one daily summary per day in [from, to]
func (s *FinanceServiceImpl) GetRangeSummary(ctx context.Context, businessID, from, to string) ([]*models.DailySummary, error) {
	dates, err := utils.DatesBetween(from, to, s.loc)
	if err != nil {
		return nil, validationError("%s", err.Error())
	}
	if len(dates) > MaxSummaryDays {
		return nil, validationError("range must not exceed %d days", MaxSummaryDays)
	}
	business, err := s.businessRepo.GetOrCreate(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", businessID, err)
	}

	summaries := make([]*models.DailySummary, 0, len(dates))
	for _, date := range dates {
		start, end, err := utils.DayWindow(date, s.loc)
		if err != nil {
			return nil, err
		}
		summary, err := s.summarize(ctx, business, date, start, end)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *FinanceServiceImpl) summarize(ctx context.Context, business *models.Business, date string, start, end time.Time) (*models.DailySummary, error) {
	sales, err := s.saleRepo.FindByCreatedRange(ctx, business.ID, nil, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales of %s: %w", date, err)
	}
	sold := decimal.Zero
	for _, sale := range sales {
		sold = sold.Add(decimal.NewFromFloat(sale.TotalCost))
	}
	pct := decimal.NewFromFloat(business.CommissionPercent)
	commission := sold.Mul(pct).Div(hundred)

	results, err := s.resultRepo.FindByDate(ctx, business.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load results of %s: %w", date, err)
	}

	prizesPaid, prizesPending := decimal.Zero, decimal.Zero
	winningTickets := make(map[string]bool)
	for _, result := range results {
		draw, winners, err := s.resolver.resolve(ctx, result)
		if err != nil {
			return nil, err
		}

		paid, err := loadPaidMap(ctx, s.payoutRepo, result)
		if err != nil {
			return nil, err
		}
		cost := decimal.NewFromFloat(draw.CostPerFraction)
		for _, w := range winners {
			amount := decimal.NewFromInt(w.TotalWin).Mul(cost)
			if paid[w.TicketID] {
				prizesPaid = prizesPaid.Add(amount)
			} else {
				prizesPending = prizesPending.Add(amount)
			}
			winningTickets[w.TicketID] = true
		}
	}
	prizes := prizesPaid.Add(prizesPending)

	return &models.DailySummary{
		Date:              date,
		SalesCount:        len(sales),
		TotalSold:         money(sold),
		CommissionPercent: business.CommissionPercent,
		Commission:        money(commission),
		Prizes:            money(prizes),
		PrizesPaid:        money(prizesPaid),
		PrizesPending:     money(prizesPending),
		Net:               money(sold.Sub(commission).Sub(prizes)),
		ResultsCount:      len(results),
		WinningTickets:    len(winningTickets),
	}, nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
