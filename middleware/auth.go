package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"mithai-mahal/models"
	"mithai-mahal/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
	contextIdentity  = "identity"
)

type TokenValidator interface {
	ValidateToken(token string) (*models.Identity, error)
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token
// and attaches the caller's identity to the context. A failed revocation
// lookup rejects the request with 503.
func AuthMiddleware(tokens TokenValidator, revoker services.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required", nil)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || tokenParts[1] == "" {
			abortUnauthorized(c, "Invalid authorization header format", nil)
			return
		}

		identity, err := tokens.ValidateToken(tokenParts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token", err)
			return
		}

		if revoker != nil && identity.TokenID != "" {
			revoked, err := revoker.IsRevoked(c.Request.Context(), identity.TokenID)
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "token revocation lookup failed", "error", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
					Success: false,
					Message: "Unable to verify token",
					Error:   err.Error(),
				})
				return
			}
			if revoked {
				abortUnauthorized(c, "Token has been revoked", nil)
				return
			}
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUserEmail, identity.Email)
		c.Set(ContextUserRole, identity.Role)
		c.Set(contextIdentity, *identity)
		c.Next()
	}
}

// RequireRoles lets the request through only when the caller's role is in roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "User role not found",
			})
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "Access denied. Required role: " + strings.Join(roles, " or "),
			})
			return
		}

		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(contextIdentity)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}
