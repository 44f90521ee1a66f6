package handlers

import (
	"errors"
	"net/http"

	"github.com/Ah-ugo/amber-hotels-menu/internal/services"
	"github.com/Ah-ugo/amber-hotels-menu/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer errors onto HTTP statuses. Nothing is
// swallowed: every failure reaches the client as a JSON error body.
func respondError(c *gin.Context, err error) {
	var validationErr validation.ValidationError
	var notFoundErr services.NotFoundError
	var connectivityErr services.ConnectivityError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &connectivityErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": connectivityErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
