package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rate-engine-service/internal/engine"
	"rate-engine-service/internal/models"
	"rate-engine-service/internal/repository"
	"rate-engine-service/internal/services"
)

// QuoteHandler handles HTTP requests for packing and rate quoting
type QuoteHandler struct {
	quoteService *services.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// PackOrder handles POST /api/shipping/pack
func (h *QuoteHandler) PackOrder(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	var request models.PackRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	result, err := h.quoteService.PackOrder(c.Request.Context(), companyID, request)
	if err != nil {
		respondPackingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    result,
	})
}

// GetQuotes handles POST /api/shipping/quotes
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	var request models.QuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	response, err := h.quoteService.QuoteOrder(c.Request.Context(), companyID, request)
	if err != nil {
		respondPackingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    response,
	})
}

// HealthCheck handles GET /health
func (h *QuoteHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rate-engine-service",
	})
}

// respondPackingError maps pipeline errors onto HTTP statuses. The two fatal
// packing conditions are unprocessable-entity responses carrying enough
// detail for user-facing remediation; bad input is a 400; anything else is a
// 500.
func respondPackingError(c *gin.Context, err error) {
	var exceeds *engine.ItemExceedsContainersError
	switch {
	case errors.As(err, &exceeds):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "Item exceeds all containers",
			Message: exceeds.Error(),
		})
	case errors.Is(err, engine.ErrNoContainersAvailable):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "No containers available",
			Message: "The company has no active boxes configured for packing",
		})
	case errors.Is(err, engine.ErrNoItemsToPack),
		errors.Is(err, engine.ErrInvalidQuantity),
		errors.Is(err, repository.ErrUnknownSKU):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid packing request",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to process request",
			Message: err.Error(),
		})
	}
}

func respondMissingCompany(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "Missing company context",
		Message: "X-Company-ID header is required",
	})
}

func getCompanyID(c *gin.Context) string {
	return c.GetString("company_id")
}

func stringPtr(s string) *string {
	return &s
}
