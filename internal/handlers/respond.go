// Package handlers contains HTTP request handlers for the store manager API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oma0256/store-manager-api/internal/policy"
	"github.com/oma0256/store-manager-api/internal/repository"
	"github.com/oma0256/store-manager-api/internal/service"
)

// RespondError writes a structured error payload.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// LogAndRespondError logs the underlying error and writes a generic
// message to the client.
func LogAndRespondError(c *gin.Context, status int, err error, message string) {
	zap.L().Error(message,
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	RespondError(c, status, message)
}

// respondServiceError maps a service error to its HTTP status and
// surfaces the error text as the response message.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var stockErr *repository.InsufficientStockError

	switch {
	case errors.Is(err, policy.ErrMustBeAdmin),
		errors.Is(err, policy.ErrMustBeAttendant),
		errors.Is(err, policy.ErrNotYourSale):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotRegistered),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrUserNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr),
		errors.As(err, &stockErr),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrProductExists),
		errors.Is(err, repository.ErrSaleAlreadyReverted),
		errors.Is(err, policy.ErrSeedAdminImmutable):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		LogAndRespondError(c, http.StatusInternalServerError, err, "Something went wrong")
	}
}
