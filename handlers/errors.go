package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mistriconnect/services/booking"
	"mistriconnect/utils"
)

// respondError maps domain errors to HTTP statuses. Business outcomes are
// surfaced verbatim; anything unclassified is an internal failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, booking.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "Invalid transition", err.Error())
	case errors.Is(err, booking.ErrSlotConflict):
		utils.JSONError(c, http.StatusConflict, "Slot conflict", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
