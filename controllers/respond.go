package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/services"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/utils"
)

// respondError maps the service error taxonomy onto HTTP statuses. Unknown
// errors are logged and reported as a generic server fault.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrProfileIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFoodNotFound),
		errors.Is(err, services.ErrLogNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrInvalidOTP):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrTDEEUndefined),
		errors.Is(err, utils.ErrImplausibleBody):
		// Complete profile, but the derived value is undefined for it.
		// Not a server fault.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
