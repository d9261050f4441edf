package handler

import (
	"net/http"

	"rentalops/internal/middleware"
	"rentalops/internal/service"
	"rentalops/pkg/response"

	"github.com/gin-gonic/gin"
)

type SeasonHandler struct {
	seasonService service.SeasonService
}

func NewSeasonHandler(seasonService service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

func (h *SeasonHandler) RegisterRoutes(router *gin.RouterGroup) {
	seasons := router.Group("/api/seasons")
	{
		seasons.GET("", middleware.RequireRole("admin", "manager", "staff"), h.GetSeasons)
		seasons.POST("", middleware.RequireRole("admin"), h.CreateSeason)
	}
}

func (h *SeasonHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.seasonService.GetSeasons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, seasons))
}

func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req service.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	season, err := h.seasonService.CreateSeason(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, season))
}
