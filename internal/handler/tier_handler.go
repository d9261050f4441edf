package handler

import (
	"net/http"

	"rentalops/internal/middleware"
	"rentalops/internal/service"
	"rentalops/pkg/response"

	"github.com/gin-gonic/gin"
)

type TierHandler struct {
	tierService service.TierService
}

func NewTierHandler(tierService service.TierService) *TierHandler {
	return &TierHandler{tierService: tierService}
}

func (h *TierHandler) RegisterRoutes(router *gin.RouterGroup) {
	tiers := router.Group("/api/duration-tiers")
	tiers.Use(middleware.RequireRole("admin", "manager"))
	{
		tiers.GET("", h.GetTiers)
		tiers.POST("", h.CreateTier)
		tiers.PUT("/:id", h.UpdateTier)
		tiers.DELETE("/:id", h.DeleteTier)
		tiers.POST("/seed", h.SeedTiers)
	}
}

// GetTiers returns the tier set ordered by min_days
func (h *TierHandler) GetTiers(c *gin.Context) {
	tiers, err := h.tierService.GetTiers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tiers))
}

// CreateTier adds a tier; the merged tier set must still cover [1, ∞)
func (h *TierHandler) CreateTier(c *gin.Context) {
	var req service.TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tier, err := h.tierService.CreateTier(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tier))
}

func (h *TierHandler) UpdateTier(c *gin.Context) {
	var req service.TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tier, err := h.tierService.UpdateTier(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tier))
}

// DeleteTier removes a tier; a delete that reopens a coverage gap is
// rejected
func (h *TierHandler) DeleteTier(c *gin.Context) {
	if err := h.tierService.DeleteTier(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// SeedTiers bulk-loads the default tier set
func (h *TierHandler) SeedTiers(c *gin.Context) {
	tiers, err := h.tierService.SeedDefaultTiers(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tiers))
}
