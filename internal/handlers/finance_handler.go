package handlers

import (
	"net/http"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// FinanceHandler serves commission and prize summaries
type FinanceHandler struct {
	financeService services.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService services.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// GetDailySummary handles GET /finance/daily?date=YYYY-MM-DD
func (h *FinanceHandler) GetDailySummary(c *gin.Context) {
	summary, err := h.financeService.GetDailySummary(c.Request.Context(), middleware.BusinessID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRangeSummary handles GET /finance/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *FinanceHandler) GetRangeSummary(c *gin.Context) {
	summaries, err := h.financeService.GetRangeSummary(c.Request.Context(), middleware.BusinessID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": summaries})
}
