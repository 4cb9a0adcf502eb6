package handlers

import (
	"net/http"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// SaleHandler handles ticket sales
type SaleHandler struct {
	saleService        services.SaleService
	maintenanceService services.MaintenanceService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService services.SaleService, maintenanceService services.MaintenanceService) *SaleHandler {
	return &SaleHandler{
		saleService:        saleService,
		maintenanceService: maintenanceService,
	}
}

// ListSales handles GET /sales?date=YYYY-MM-DD[&drawId=...]
func (h *SaleHandler) ListSales(c *gin.Context) {
	sales, err := h.saleService.ListSales(c.Request.Context(), middleware.BusinessID(c), c.Query("date"), c.Query("drawId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// CreateSale handles POST /sales
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sale, err := h.saleService.CreateSale(c.Request.Context(), middleware.BusinessID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// GetSale handles GET /sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), middleware.BusinessID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// UpdateSale handles PUT /sales/:id
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sale, err := h.saleService.UpdateSale(c.Request.Context(), middleware.BusinessID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DeleteSale handles DELETE /sales/:id
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	if err := h.saleService.DeleteSale(c.Request.Context(), middleware.BusinessID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PurgeSales handles DELETE /sales. A partial run is reported as a failure.
func (h *SaleHandler) PurgeSales(c *gin.Context) {
	businessID := middleware.BusinessID(c)
	res, err := h.maintenanceService.PurgeSales(c.Request.Context(), businessID)
	if err != nil {
		slog.Error("Sales purge failed", "error", err, "businessID", businessID)
		RespondWithError(c, http.StatusInternalServerError, "Bulk delete failed, please retry")
		return
	}
	c.JSON(http.StatusOK, res)
}
