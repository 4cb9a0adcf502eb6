package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
)

// BusinessServiceImpl implements BusinessService
type BusinessServiceImpl struct {
	businessRepo repositories.BusinessRepository
}

var _ BusinessService = (*BusinessServiceImpl)(nil)

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo repositories.BusinessRepository) *BusinessServiceImpl {
	return &BusinessServiceImpl{
		businessRepo: businessRepo,
	}
}

// GetBusiness retrieves the business profile
func (s *BusinessServiceImpl) GetBusiness(ctx context.Context, businessID string) (*models.Business, error) {
	business, err := s.businessRepo.GetOrCreate(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", businessID, err)
	}
	return business, nil
}

// UpdateBusiness replaces the editable profile fields
func (s *BusinessServiceImpl) UpdateBusiness(ctx context.Context, businessID string, req *models.BusinessRequest) (*models.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if req.CommissionPercent < 0 || req.CommissionPercent > 100 {
		return nil, validationError("commissionPercent must be between 0 and 100")
	}

	business, err := s.businessRepo.GetOrCreate(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", businessID, err)
	}
	business.Name = name
	business.LogoURL = strings.TrimSpace(req.LogoURL)
	business.CommissionPercent = req.CommissionPercent
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to update business %s: %w", businessID, err)
	}
	return business, nil
}
