package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mithai-mahal/models"
	"mithai-mahal/repositories"
	"mithai-mahal/services"
	"mithai-mahal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(tokens *utils.TokenManager, revoker services.TokenRevoker, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/guarded", AuthMiddleware(tokens, revoker), RequireRoles(roles...), func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, identity.UserID)
	})
	return r
}

func call(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-secret", time.Hour)
	revoker := repositories.NewMemoryRevocationStore()
	r := newGuardedRouter(tokens, revoker, models.RoleUser, models.RoleAdmin)

	token, err := tokens.GenerateToken(models.User{ID: "u-1", Email: "u@shop.in", Role: models.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, status: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := call(r, "Bearer "+token)
	assert.Equal(t, "u-1", w.Body.String())
}

func TestAuthMiddleware_RejectsForeignSignature(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-secret", time.Hour)
	r := newGuardedRouter(tokens, repositories.NewMemoryRevocationStore(), models.RoleUser)

	forged, err := utils.NewTokenManager("someone-else", time.Hour).GenerateToken(models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)

	w := call(r, "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsRevokedToken(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-secret", time.Hour)
	revoker := repositories.NewMemoryRevocationStore()
	r := newGuardedRouter(tokens, revoker, models.RoleUser)

	token, err := tokens.GenerateToken(models.User{ID: "u-2", Role: models.RoleUser})
	require.NoError(t, err)
	identity, err := tokens.ValidateToken(token)
	require.NoError(t, err)

	require.NoError(t, revoker.Revoke(context.Background(), identity.TokenID, identity.ExpiresAt))

	w := call(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has been revoked")
}

func TestRequireRoles(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-secret", time.Hour)
	r := newGuardedRouter(tokens, nil, models.RoleAdmin)

	userToken, err := tokens.GenerateToken(models.User{ID: "u-3", Role: models.RoleUser})
	require.NoError(t, err)
	adminToken, err := tokens.GenerateToken(models.User{ID: "a-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	rolelessToken, err := tokens.GenerateToken(models.User{ID: "x-1"})
	require.NoError(t, err)

	w := call(r, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Required role: admin")

	w = call(r, "Bearer "+rolelessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User role not found")

	w = call(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

type unreachableRevoker struct{}

func (unreachableRevoker) Revoke(context.Context, string, time.Time) error {
	return errors.New("redis: connection refused")
}

func (unreachableRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestAuthMiddleware_FailsClosedWhenRevocationUnavailable(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-secret", time.Hour)
	r := newGuardedRouter(tokens, unreachableRevoker{}, models.RoleUser)

	token, err := tokens.GenerateToken(models.User{ID: "u-4", Role: models.RoleUser})
	require.NoError(t, err)

	w := call(r, "Bearer "+token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to verify token")
}
