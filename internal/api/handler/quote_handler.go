package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/response"
)

// QuoteHandler quote endpoint
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

// NewQuoteHandler creates a QuoteHandler
func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// Random GET /api/v1/quote/random
func (h *QuoteHandler) Random(c *gin.Context) {
	quote, err := h.quoteSvc.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoQuotes) {
			response.NotFound(c, 16001, "no quotes available")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, quote)
}
