package api

import (
	"errors"
	"net/http"

	"flightbook/internal/domain"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to status codes. Storage failures surface as
// a generic per-operation message; the cause stays in the logs.
func writeError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateBooking),
		errors.Is(err, domain.ErrNoSeats),
		errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + op})
	}
}
