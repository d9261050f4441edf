package handler

import (
	"rentalops/internal/service"
	"rentalops/pkg/apperror"
	"rentalops/pkg/response"

	"github.com/gin-gonic/gin"
)

// actorFromContext assembles the caller identity set by the auth
// middleware.
func actorFromContext(c *gin.Context) service.Actor {
	return service.Actor{
		UserID:    c.GetString("userID"),
		Role:      c.GetString("userRole"),
		CompanyID: c.GetString("companyID"),
	}
}

// respondError maps a typed service error to its HTTP status.
func respondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	c.JSON(status, response.Error(status, err.Error()))
}
