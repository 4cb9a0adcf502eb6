package handlers

import (
	"net/http"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// BusinessHandler handles the business profile
type BusinessHandler struct {
	businessService services.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService services.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
	}
}

// GetBusiness handles GET /business
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, err := h.businessService.GetBusiness(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// UpdateBusiness handles PUT /business
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	var req models.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	business, err := h.businessService.UpdateBusiness(c.Request.Context(), middleware.BusinessID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}
