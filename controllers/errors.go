package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"mithai-mahal/models"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrDuplicateName):
		return http.StatusBadRequest, "Sweet already exists"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Sweet not found"
	case errors.Is(err, models.ErrOutOfStock):
		return http.StatusBadRequest, "Sweet out of stock"
	case errors.Is(err, models.ErrInvalidQuantity):
		return http.StatusBadRequest, "Invalid quantity"
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

func respondBadRequest(c *gin.Context, err error) {
	resp := models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
