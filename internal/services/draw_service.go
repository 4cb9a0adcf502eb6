package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// DrawServiceImpl implements the DrawService interface
type DrawServiceImpl struct {
	drawRepo   repositories.DrawRepository
	saleRepo   repositories.SaleRepository
	resultRepo repositories.ResultRepository
}

var _ DrawService = (*DrawServiceImpl)(nil)

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(drawRepo repositories.DrawRepository, saleRepo repositories.SaleRepository, resultRepo repositories.ResultRepository) *DrawServiceImpl {
	return &DrawServiceImpl{
		drawRepo:   drawRepo,
		saleRepo:   saleRepo,
		resultRepo: resultRepo,
	}
}

// CreateDraw validates and stores a new draw
func (s *DrawServiceImpl) CreateDraw(ctx context.Context, businessID string, req *models.DrawRequest) (*models.Draw, error) {
	draw := &models.Draw{BusinessID: businessID}
	if err := applyDrawRequest(draw, req); err != nil {
		return nil, err
	}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		slog.Error("Failed to create draw", "error", err, "businessID", businessID)
		return nil, fmt.Errorf("failed to create draw: %w", err)
	}
	return draw, nil
}

// GetDraw retrieves a draw by its ID
func (s *DrawServiceImpl) GetDraw(ctx context.Context, businessID, drawID string) (*models.Draw, error) {
	id, err := pathID("draw", drawID)
	if err != nil {
		return nil, err
	}
	draw, err := s.drawRepo.FindByID(ctx, businessID, id)
	if isNotFound(err) {
		return nil, notFoundError("draw %s", drawID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draw %s: %w", drawID, err)
	}
	return draw, nil
}

// ListDraws lists the draws of a business
func (s *DrawServiceImpl) ListDraws(ctx context.Context, businessID string) ([]*models.Draw, error) {
	draws, err := s.drawRepo.FindAll(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}
	return draws, nil
}

// UpdateDraw replaces a draw's settings. Once sales or results reference the
// draw its digit count is fixed and schedules in use cannot be removed.
func (s *DrawServiceImpl) UpdateDraw(ctx context.Context, businessID, drawID string, req *models.DrawRequest) (*models.Draw, error) {
	draw, err := s.GetDraw(ctx, businessID, drawID)
	if err != nil {
		return nil, err
	}
	updated := *draw
	if err := applyDrawRequest(&updated, req); err != nil {
		return nil, err
	}

	referenced, err := s.isReferenced(ctx, draw)
	if err != nil {
		return nil, err
	}
	if referenced {
		if updated.NumberOfDigits != draw.NumberOfDigits {
			return nil, conflictError("numberOfDigits cannot change once the draw has sales or results")
		}
		kept := make(map[string]bool, len(updated.ScheduleList))
		for _, label := range updated.ScheduleList {
			kept[utils.Slugify(label)] = true
		}
		for _, label := range draw.ScheduleList {
			if !kept[utils.Slugify(label)] {
				return nil, conflictError("schedule %q cannot be removed once the draw has sales or results", label)
			}
		}
	}

	if err := s.drawRepo.Update(ctx, &updated); err != nil {
		if isNotFound(err) {
			return nil, notFoundError("draw %s", drawID)
		}
		slog.Error("Failed to update draw", "error", err, "businessID", businessID, "drawID", drawID)
		return nil, fmt.Errorf("failed to update draw: %w", err)
	}
	return &updated, nil
}

// DeleteDraw deletes an unreferenced draw
func (s *DrawServiceImpl) DeleteDraw(ctx context.Context, businessID, drawID string) error {
	draw, err := s.GetDraw(ctx, businessID, drawID)
	if err != nil {
		return err
	}
	referenced, err := s.isReferenced(ctx, draw)
	if err != nil {
		return err
	}
	if referenced {
		return conflictError("draw %s has sales or results", drawID)
	}
	if err := s.drawRepo.Delete(ctx, businessID, draw.ID); err != nil {
		if isNotFound(err) {
			return notFoundError("draw %s", drawID)
		}
		return fmt.Errorf("failed to delete draw: %w", err)
	}
	return nil
}

func (s *DrawServiceImpl) isReferenced(ctx context.Context, draw *models.Draw) (bool, error) {
	sales, err := s.saleRepo.CountByDraw(ctx, draw.BusinessID, draw.ID)
	if err != nil {
		return false, fmt.Errorf("failed to count sales of draw %s: %w", draw.ID.Hex(), err)
	}
	if sales > 0 {
		return true, nil
	}
	results, err := s.resultRepo.CountByDraw(ctx, draw.BusinessID, draw.ID)
	if err != nil {
		return false, fmt.Errorf("failed to count results of draw %s: %w", draw.ID.Hex(), err)
	}
	return results > 0, nil
}

func applyDrawRequest(draw *models.Draw, req *models.DrawRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return validationError("name is required")
	}
	if req.NumberOfDigits < models.MinDigits || req.NumberOfDigits > models.MaxDigits {
		return validationError("numberOfDigits must be between %d and %d", models.MinDigits, models.MaxDigits)
	}
	if req.CostPerFraction <= 0 {
		return validationError("costPerFraction must be greater than zero")
	}
	schedules, err := normalizeSchedules(req.ScheduleList)
	if err != nil {
		return err
	}
	draw.Name = name
	draw.NumberOfDigits = req.NumberOfDigits
	draw.CostPerFraction = req.CostPerFraction
	draw.ScheduleList = schedules
	return nil
}

// normalizeSchedules trims labels and drops later labels that share a slug with an earlier one
func normalizeSchedules(labels []string) ([]string, error) {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		slug := utils.Slugify(label)
		if slug == "" {
			return nil, validationError("schedule labels must not be empty")
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, label)
	}
	if len(out) == 0 {
		return nil, validationError("at least one schedule is required")
	}
	return out, nil
}

// drawSchedule returns the draw's own label for a schedule, matched by slug
func drawSchedule(draw *models.Draw, label string) (string, string, bool) {
	slug := utils.Slugify(label)
	if slug == "" {
		return "", "", false
	}
	for _, l := range draw.ScheduleList {
		if utils.Slugify(l) == slug {
			return l, slug, true
		}
	}
	return "", "", false
}
