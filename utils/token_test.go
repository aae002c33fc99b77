package utils

import (
	"testing"
	"time"

	"mithai-mahal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := models.User{ID: "u-1", Email: "admin@mithai.test", Role: models.RoleAdmin}

	token, err := tm.GenerateToken(user)
	require.NoError(t, err)

	identity, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, "admin@mithai.test", identity.Email)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.NotEmpty(t, identity.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), identity.ExpiresAt, 5*time.Second)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateToken(models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tm.GenerateToken(models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "u-1",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).ValidateToken("not.a.jwt")
	assert.Error(t, err)
}
