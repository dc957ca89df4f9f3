package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cabax/cabax-backend/services"
	"github.com/cabax/cabax-backend/utils"
)

// ErrNoPermission is returned for role or admin-key mismatches.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// respondServiceError maps service errors onto the HTTP taxonomy:
// missing entities are 404, settlement conflicts 409, rule violations 400.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.SettlementConflictError
	switch {
	case errors.As(err, &conflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrTableNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrTableOccupied):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
