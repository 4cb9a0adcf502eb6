package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
)

func resultRequest(h *harness, label string, first, second, third string) *models.ResultRequest {
	return &models.ResultRequest{
		DrawID:        h.draw.ID.Hex(),
		Date:          "2024-03-10",
		ScheduleLabel: label,
		WinningNumbers: models.WinningNumbers{
			First:  first,
			Second: second,
			Third:  third,
		},
	}
}

func TestResultService_CreateResult(t *testing.T) {
	h := newHarness()
	svc := h.resultService()
	ctx := context.Background()

	result, err := svc.CreateResult(ctx, testBusiness, resultRequest(h, "01:00 pm", "5", "12", "0"))
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	want := models.WinningNumbers{First: "05", Second: "12", Third: "00"}
	if result.WinningNumbers != want {
		t.Errorf("Expected %+v, but got %+v", want, result.WinningNumbers)
	}
	if result.ScheduleLabel != "01:00 PM" || result.ScheduleSlug != "0100_pm" {
		t.Errorf("Expected the draw's label and slug, but got %q / %q", result.ScheduleLabel, result.ScheduleSlug)
	}

	t.Run("duplicate slot", func(t *testing.T) {
		_, err := svc.CreateResult(ctx, testBusiness, resultRequest(h, "  01:00   PM ", "1", "2", "3"))
		if !errors.Is(err, ErrConflict) {
			t.Errorf("Expected ErrConflict, but got %v", err)
		}
	})

	t.Run("racing insert hits the unique index", func(t *testing.T) {
		h.results.createErr = repositories.ErrDuplicate
		defer func() { h.results.createErr = nil }()
		_, err := svc.CreateResult(ctx, testBusiness, resultRequest(h, "09:00 PM", "1", "2", "3"))
		if !errors.Is(err, ErrConflict) {
			t.Errorf("Expected ErrConflict, but got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		bad := map[string]*models.ResultRequest{
			"schedule":  resultRequest(h, "03:00 PM", "1", "2", "3"),
			"digits":    resultRequest(h, "09:00 PM", "100", "2", "3"),
			"non digit": resultRequest(h, "09:00 PM", "1", "x", "3"),
		}
		badDate := resultRequest(h, "09:00 PM", "1", "2", "3")
		badDate.Date = "2024/03/10"
		bad["date"] = badDate

		for name, req := range bad {
			if _, err := svc.CreateResult(ctx, testBusiness, req); !errors.Is(err, ErrValidation) {
				t.Errorf("%s: expected ErrValidation, but got %v", name, err)
			}
		}
	})
}

func TestResultService_PayoutsLockResult(t *testing.T) {
	h := newHarness()
	result := h.seedExample()
	ctx := context.Background()

	if _, err := h.payoutService().MarkPaid(ctx, testBusiness, result.ID.Hex(), "A"); err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	svc := h.resultService()

	_, err := svc.UpdateResult(ctx, testBusiness, result.ID.Hex(), resultRequest(h, "09:00 PM", "05", "12", "30"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict moving a paid result, but got %v", err)
	}
	_, err = svc.UpdateResult(ctx, testBusiness, result.ID.Hex(), resultRequest(h, "01:00 PM", "06", "12", "30"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict changing numbers of a paid result, but got %v", err)
	}
	if err := svc.DeleteResult(ctx, testBusiness, result.ID.Hex()); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict deleting a paid result, but got %v", err)
	}

	if _, err := h.payoutService().ReversePayout(ctx, testBusiness, result.ID.Hex(), "A"); err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if err := svc.DeleteResult(ctx, testBusiness, result.ID.Hex()); err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if len(h.payouts.payouts) != 1 {
		t.Fatalf("Expected the reversed payout record to outlive the result, but got %d", len(h.payouts.payouts))
	}
	for _, p := range h.payouts.payouts {
		if p.Status != models.PayoutStateReversed {
			t.Errorf("Expected status %s, but got %s", models.PayoutStateReversed, p.Status)
		}
	}
}

func TestResultService_UpdateMovesFreeResult(t *testing.T) {
	h := newHarness()
	result := h.seedResult()
	svc := h.resultService()

	updated, err := svc.UpdateResult(context.Background(), testBusiness, result.ID.Hex(), resultRequest(h, "09:00 PM", "1", "2", "3"))
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if updated.ID != result.ID || updated.ScheduleSlug != "0900_pm" {
		t.Errorf("Expected the same result on the 09:00 PM slot, but got %+v", updated)
	}
}
