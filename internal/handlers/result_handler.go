package handlers

import (
	"net/http"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// ResultHandler handles recorded results and their winners
type ResultHandler struct {
	resultService      services.ResultService
	payoutService      services.PayoutService
	maintenanceService services.MaintenanceService
}

// NewResultHandler creates a new ResultHandler
func NewResultHandler(resultService services.ResultService, payoutService services.PayoutService, maintenanceService services.MaintenanceService) *ResultHandler {
	return &ResultHandler{
		resultService:      resultService,
		payoutService:      payoutService,
		maintenanceService: maintenanceService,
	}
}

// ListResults handles GET /results?date=YYYY-MM-DD
func (h *ResultHandler) ListResults(c *gin.Context) {
	results, err := h.resultService.ListResults(c.Request.Context(), middleware.BusinessID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// CreateResult handles POST /results
func (h *ResultHandler) CreateResult(c *gin.Context) {
	var req models.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.resultService.CreateResult(c.Request.Context(), middleware.BusinessID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetResult handles GET /results/:id
func (h *ResultHandler) GetResult(c *gin.Context) {
	result, err := h.resultService.GetResult(c.Request.Context(), middleware.BusinessID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateResult handles PUT /results/:id
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	var req models.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.resultService.UpdateResult(c.Request.Context(), middleware.BusinessID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteResult handles DELETE /results/:id
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	if err := h.resultService.DeleteResult(c.Request.Context(), middleware.BusinessID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PurgeResults handles DELETE /results. A partial run is reported as a failure.
func (h *ResultHandler) PurgeResults(c *gin.Context) {
	businessID := middleware.BusinessID(c)
	res, err := h.maintenanceService.PurgeResults(c.Request.Context(), businessID)
	if err != nil {
		slog.Error("Results purge failed", "error", err, "businessID", businessID)
		RespondWithError(c, http.StatusInternalServerError, "Bulk delete failed, please retry")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetWinners handles GET /results/:id/winners
func (h *ResultHandler) GetWinners(c *gin.Context) {
	report, err := h.payoutService.GetWinners(c.Request.Context(), middleware.BusinessID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// MarkPaid handles POST /results/:id/winners/:ticketId/pay
func (h *ResultHandler) MarkPaid(c *gin.Context) {
	payout, err := h.payoutService.MarkPaid(c.Request.Context(), middleware.BusinessID(c), c.Param("id"), c.Param("ticketId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payout)
}

// ReversePayout handles POST /results/:id/winners/:ticketId/reverse
func (h *ResultHandler) ReversePayout(c *gin.Context) {
	payout, err := h.payoutService.ReversePayout(c.Request.Context(), middleware.BusinessID(c), c.Param("id"), c.Param("ticketId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payout)
}
