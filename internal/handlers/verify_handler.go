package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

const ticketNotFoundMessage = "Ticket not found"

// VerifyHandler serves the public ticket lookup
type VerifyHandler struct {
	verificationService services.VerificationService
	limiter             middleware.RateLimiter
}

// NewVerifyHandler creates a new VerifyHandler
func NewVerifyHandler(verificationService services.VerificationService, limiter middleware.RateLimiter) *VerifyHandler {
	return &VerifyHandler{
		verificationService: verificationService,
		limiter:             limiter,
	}
}

// VerifyTicket handles GET /public/tickets/:ticketId.
// Unknown, malformed and rate limited lookups all get the same 404 so the
// endpoint cannot be used to probe which ids exist.
func (h *VerifyHandler) VerifyTicket(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		slog.Warn("Ticket verification rate limited", "clientIP", c.ClientIP())
		RespondWithError(c, http.StatusNotFound, ticketNotFoundMessage)
		return
	}

	ticket, err := h.verificationService.VerifyTicket(c.Request.Context(), c.Param("ticketId"))
	if errors.Is(err, services.ErrNotFound) {
		RespondWithError(c, http.StatusNotFound, ticketNotFoundMessage)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
