package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// ResultServiceImpl implements the ResultService interface
type ResultServiceImpl struct {
	resultRepo repositories.ResultRepository
	drawRepo   repositories.DrawRepository
	payoutRepo repositories.PayoutRepository
	loc        *time.Location
}

var _ ResultService = (*ResultServiceImpl)(nil)

// NewResultService creates a new ResultServiceImpl
func NewResultService(resultRepo repositories.ResultRepository, drawRepo repositories.DrawRepository, payoutRepo repositories.PayoutRepository, loc *time.Location) *ResultServiceImpl {
	return &ResultServiceImpl{
		resultRepo: resultRepo,
		drawRepo:   drawRepo,
		payoutRepo: payoutRepo,
		loc:        loc,
	}
}

// CreateResult records the winning numbers of one draw, date and schedule.
// Only one result may exist per slot.
func (s *ResultServiceImpl) CreateResult(ctx context.Context, businessID string, req *models.ResultRequest) (*models.Result, error) {
	result, err := s.buildResult(ctx, businessID, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlotFree(ctx, result); err != nil {
		return nil, err
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, s.slotTaken(result)
		}
		slog.Error("Failed to create result", "error", err, "businessID", businessID, "drawID", result.DrawID.Hex(), "date", result.Date)
		return nil, fmt.Errorf("failed to create result: %w", err)
	}
	return result, nil
}

// GetResult retrieves a result by its ID
func (s *ResultServiceImpl) GetResult(ctx context.Context, businessID, resultID string) (*models.Result, error) {
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

// ListResults lists the results of a calendar day
func (s *ResultServiceImpl) ListResults(ctx context.Context, businessID, date string) ([]*models.Result, error) {
	if _, err := utils.ParseDate(date, s.loc); err != nil {
		return nil, validationError("date must be YYYY-MM-DD")
	}
	results, err := s.resultRepo.FindByDate(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// UpdateResult replaces a result. Its slot cannot move once payout records
// exist, and its numbers cannot change once a ticket was paid.
func (s *ResultServiceImpl) UpdateResult(ctx context.Context, businessID, resultID string, req *models.ResultRequest) (*models.Result, error) {
	existing, err := s.GetResult(ctx, businessID, resultID)
	if err != nil {
		return nil, err
	}
	result, err := s.buildResult(ctx, businessID, req)
	if err != nil {
		return nil, err
	}
	result.ID = existing.ID
	result.CreatedAt = existing.CreatedAt

	slotChanged := result.DrawID != existing.DrawID || result.Date != existing.Date || result.ScheduleSlug != existing.ScheduleSlug
	if slotChanged {
		payouts, err := s.countPayouts(ctx, existing, "")
		if err != nil {
			return nil, fmt.Errorf("failed to check payouts of result %s: %w", resultID, err)
		}
		if payouts > 0 {
			return nil, conflictError("result %s has payout records and cannot move to another draw, date or schedule", resultID)
		}
		if err := s.ensureSlotFree(ctx, result); err != nil {
			return nil, err
		}
	} else if result.WinningNumbers != existing.WinningNumbers {
		paid, err := s.countPayouts(ctx, existing, models.PayoutStatePaid)
		if err != nil {
			return nil, fmt.Errorf("failed to check payouts of result %s: %w", resultID, err)
		}
		if paid > 0 {
			return nil, conflictError("result %s has paid tickets and its numbers cannot change", resultID)
		}
	}

	if err := s.resultRepo.Update(ctx, result); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, s.slotTaken(result)
		case isNotFound(err):
			return nil, notFoundError("result %s", resultID)
		}
		slog.Error("Failed to update result", "error", err, "businessID", businessID, "resultID", resultID)
		return nil, fmt.Errorf("failed to update result: %w", err)
	}
	return result, nil
}

// DeleteResult deletes a result without paid tickets. Its payout records stay,
// so a result entered again for the same slot sees the same payment history.
func (s *ResultServiceImpl) DeleteResult(ctx context.Context, businessID, resultID string) error {
	result, err := s.GetResult(ctx, businessID, resultID)
	if err != nil {
		return err
	}
	paid, err := s.countPayouts(ctx, result, models.PayoutStatePaid)
	if err != nil {
		return fmt.Errorf("failed to check payouts of result %s: %w", resultID, err)
	}
	if paid > 0 {
		return conflictError("result %s has paid tickets", resultID)
	}
	if err := s.resultRepo.Delete(ctx, businessID, result.ID); err != nil {
		if isNotFound(err) {
			return notFoundError("result %s", resultID)
		}
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

// countPayouts counts the payout records of the result's slot, in status when given
func (s *ResultServiceImpl) countPayouts(ctx context.Context, result *models.Result, status models.PayoutState) (int64, error) {
	return s.payoutRepo.CountBySlot(ctx, result.BusinessID, result.DrawID, result.Date, resultSlug(result), status)
}

func (s *ResultServiceImpl) ensureSlotFree(ctx context.Context, result *models.Result) error {
	other, err := s.resultRepo.FindBySlot(ctx, result.BusinessID, result.DrawID, result.Date, result.ScheduleSlug)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check result slot: %w", err)
	}
	if other.ID != result.ID {
		return s.slotTaken(result)
	}
	return nil
}

func (s *ResultServiceImpl) slotTaken(result *models.Result) error {
	return conflictError("a result for %s on %s already exists", result.ScheduleLabel, result.Date)
}

func (s *ResultServiceImpl) buildResult(ctx context.Context, businessID string, req *models.ResultRequest) (*models.Result, error) {
	drawID, err := bodyID("drawId", req.DrawID)
	if err != nil {
		return nil, err
	}
	date := strings.TrimSpace(req.Date)
	if _, err := utils.ParseDate(date, s.loc); err != nil {
		return nil, validationError("date must be YYYY-MM-DD")
	}
	draw, err := s.drawRepo.FindByID(ctx, businessID, drawID)
	if isNotFound(err) {
		return nil, validationError("draw %s does not exist", req.DrawID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draw %s: %w", req.DrawID, err)
	}
	label, slug, ok := drawSchedule(draw, req.ScheduleLabel)
	if !ok {
		return nil, validationError("schedule %q does not belong to draw %s", strings.TrimSpace(req.ScheduleLabel), draw.Name)
	}

	numbers := [3]string{req.WinningNumbers.First, req.WinningNumbers.Second, req.WinningNumbers.Third}
	var padded [3]string
	for i, n := range numbers {
		v := strings.TrimSpace(n)
		if !utils.IsDigits(v) || len(v) > draw.NumberOfDigits {
			return nil, validationError("winning numbers must have 1 to %d digits", draw.NumberOfDigits)
		}
		padded[i] = utils.PadNumber(v, draw.NumberOfDigits)
	}

	return &models.Result{
		BusinessID:    businessID,
		DrawID:        draw.ID,
		Date:          date,
		ScheduleLabel: label,
		ScheduleSlug:  slug,
		WinningNumbers: models.WinningNumbers{
			First:  padded[0],
			Second: padded[1],
			Third:  padded[2],
		},
	}, nil
}
