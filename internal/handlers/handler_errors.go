package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
)

// respondServiceError translates the service error taxonomy into HTTP
// responses. fallbackMsg is returned on unclassified errors so internals
// never leak to the client.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var insufficientErr *apperrors.InsufficientFundsError

	switch {
	case errors.As(err, &insufficientErr):
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "insufficient funds",
			"available": insufficientErr.Available,
			"required":  insufficientErr.Required,
			"shortfall": insufficientErr.Shortfall(),
		})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidParent),
		errors.Is(err, apperrors.ErrNotSibling):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPrivilegeRequired):
		logger.Warn("Privilege required", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
