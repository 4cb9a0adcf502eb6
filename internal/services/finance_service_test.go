package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
)

func TestFinanceService_GetDailySummary(t *testing.T) {
	h := newHarness()
	h.businesses.businesses[testBusiness] = &models.Business{ID: testBusiness, Name: "Agencia", CommissionPercent: 10}
	result := h.seedExample()
	h.seedSale("OTHERDAY", testDay.AddDate(0, 0, -1), models.SaleLine{Number: "05", Quantity: 50})

	if _, err := h.payoutService().MarkPaid(context.Background(), testBusiness, result.ID.Hex(), "A"); err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	summary, err := h.financeService().GetDailySummary(context.Background(), testBusiness, "2024-03-10")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	// A: 3 fractions, B: 3 fractions, C: 5 fractions, all at 2.00
	if summary.SalesCount != 3 || summary.TotalSold != 22 {
		t.Errorf("Expected 3 sales worth 22, but got %d worth %v", summary.SalesCount, summary.TotalSold)
	}
	if summary.Commission != 2.2 {
		t.Errorf("Expected commission 2.2, but got %v", summary.Commission)
	}
	// 41 fractions of prizes at 2.00; A (33) paid, B (8) pending
	if summary.Prizes != 82 || summary.PrizesPaid != 66 || summary.PrizesPending != 16 {
		t.Errorf("Expected prizes 82 = 66 + 16, but got %v = %v + %v", summary.Prizes, summary.PrizesPaid, summary.PrizesPending)
	}
	if summary.Net != -62.2 {
		t.Errorf("Expected net -62.2, but got %v", summary.Net)
	}
	if summary.ResultsCount != 1 || summary.WinningTickets != 2 {
		t.Errorf("Expected 1 result and 2 winning tickets, but got %d and %d", summary.ResultsCount, summary.WinningTickets)
	}
}

func TestFinanceService_GetRangeSummary(t *testing.T) {
	h := newHarness()
	h.seedExample()
	svc := h.financeService()

	summaries, err := svc.GetRangeSummary(context.Background(), testBusiness, "2024-03-09", "2024-03-11")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 summaries, but got %d", len(summaries))
	}
	if summaries[0].SalesCount != 0 || summaries[1].SalesCount != 3 || summaries[2].SalesCount != 0 {
		t.Errorf("Expected sales only on the middle day, but got %d/%d/%d",
			summaries[0].SalesCount, summaries[1].SalesCount, summaries[2].SalesCount)
	}

	_, err = svc.GetRangeSummary(context.Background(), testBusiness, "2024-01-01", "2024-03-01")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for a long range, but got %v", err)
	}
	_, err = svc.GetRangeSummary(context.Background(), testBusiness, "2024-03-02", "2024-03-01")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for an inverted range, but got %v", err)
	}
}

func TestFinanceService_EmptyDay(t *testing.T) {
	h := newHarness()
	summary, err := h.financeService().GetDailySummary(context.Background(), testBusiness, testDay.Add(48*time.Hour).Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if summary.SalesCount != 0 || summary.Net != 0 || summary.Prizes != 0 {
		t.Errorf("Expected an empty summary, but got %+v", summary)
	}
}
