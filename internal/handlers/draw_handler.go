package handlers

import (
	"net/http"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

// ListDraws handles GET /draws
func (h *DrawHandler) ListDraws(c *gin.Context) {
	draws, err := h.drawService.ListDraws(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draws)
}

// CreateDraw handles POST /draws
func (h *DrawHandler) CreateDraw(c *gin.Context) {
	var req models.DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	draw, err := h.drawService.CreateDraw(c.Request.Context(), middleware.BusinessID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draw)
}

// GetDraw handles GET /draws/:id
func (h *DrawHandler) GetDraw(c *gin.Context) {
	draw, err := h.drawService.GetDraw(c.Request.Context(), middleware.BusinessID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// UpdateDraw handles PUT /draws/:id
func (h *DrawHandler) UpdateDraw(c *gin.Context) {
	var req models.DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	draw, err := h.drawService.UpdateDraw(c.Request.Context(), middleware.BusinessID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// DeleteDraw handles DELETE /draws/:id
func (h *DrawHandler) DeleteDraw(c *gin.Context) {
	if err := h.drawService.DeleteDraw(c.Request.Context(), middleware.BusinessID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
