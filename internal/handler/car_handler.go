package handler

import (
	"net/http"

	"rentalops/internal/middleware"
	"rentalops/internal/service"
	"rentalops/pkg/pagination"
	"rentalops/pkg/response"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService service.CarService
}

func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

func (h *CarHandler) RegisterRoutes(router *gin.RouterGroup) {
	cars := router.Group("/api/cars")
	cars.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		cars.GET("", h.ListCars)
		cars.POST("", middleware.RequireRole("admin", "manager"), h.CreateCar)
	}
}

func (h *CarHandler) ListCars(c *gin.Context) {
	params := pagination.Parse(c)

	cars, total, err := h.carService.ListCars(c.Request.Context(), params.Page, params.Limit, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"cars":  cars,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var req service.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, car))
}
