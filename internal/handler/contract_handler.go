package handler

import (
	"net/http"

	"rentalops/internal/middleware"
	"rentalops/internal/service"
	"rentalops/pkg/pagination"
	"rentalops/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	contractService service.ContractService
}

func NewContractHandler(contractService service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

func (h *ContractHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/api/contracts")
	contracts.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		contracts.GET("", h.ListContracts)
		contracts.POST("", h.CreateContract)
		contracts.GET("/:id", h.GetContract)
		contracts.POST("/:id/activate", h.ActivateContract)
		contracts.POST("/:id/close", h.CloseContract)
		contracts.POST("/:id/cancel", h.CancelContract)
	}
}

// CreateContract books a car: computes the authoritative total and
// persists a DRAFT contract, flipping the car to BOOKED.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req service.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, contract))
}

// ActivateContract records the pickup: DRAFT → ACTIVE, car → RENTED
func (h *ContractHandler) ActivateContract(c *gin.Context) {
	var req service.ActivateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contract, err := h.contractService.ActivateContract(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, contract))
}

// CloseContract finalizes the rental: return condition, payment batch,
// car freed — all in one transaction.
func (h *ContractHandler) CloseContract(c *gin.Context) {
	var req service.CloseContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contract, err := h.contractService.CloseContract(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, contract))
}

func (h *ContractHandler) CancelContract(c *gin.Context) {
	contract, err := h.contractService.CancelContract(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, contract))
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.contractService.GetContract(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, contract))
}

func (h *ContractHandler) ListContracts(c *gin.Context) {
	params := pagination.Parse(c)

	contracts, total, err := h.contractService.ListContracts(c.Request.Context(), c.Query("status"), params.Page, params.Limit, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"contracts": contracts,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}
