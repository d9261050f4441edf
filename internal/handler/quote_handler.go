package handler

import (
	"net/http"
	"strconv"

	"rentalops/internal/middleware"
	"rentalops/internal/service"
	"rentalops/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService service.QuoteService
}

func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	pricing := router.Group("/api/pricing")
	pricing.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		pricing.GET("/quote-matrix", h.QuoteMatrix)
	}
}

// QuoteMatrix returns the per-(season, tier) daily price preview for a
// car. sample_days sets the day count shown for the unbounded tier.
func (h *QuoteHandler) QuoteMatrix(c *gin.Context) {
	carID := c.Query("car_id")
	if carID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "car_id query parameter is required"))
		return
	}

	sampleDays, _ := strconv.Atoi(c.DefaultQuery("sample_days", "30"))

	matrix, err := h.quoteService.QuoteMatrix(c.Request.Context(), carID, sampleDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, matrix))
}
