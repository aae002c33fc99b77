package services

import (
	"context"
	"testing"
	"time"

	"mithai-mahal/models"
	"mithai-mahal/repositories"
	"mithai-mahal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *utils.TokenManager, *repositories.MemoryRevocationStore) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	revoker := repositories.NewMemoryRevocationStore()
	return NewAuthService(repositories.NewMemoryUserRepository(), tokens, revoker), tokens, revoker
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, tokens, _ := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Meera", Email: "Meera@Shop.in", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.Equal(t, "meera@shop.in", resp.User.Email)
	assert.NotEqual(t, "secret123", resp.User.Password)

	identity, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, identity.UserID)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "meera@shop.in", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestAuthService_RegisterRejectsTakenEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Name: "Ravi", Email: "ravi@shop.in", Password: "secret123", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Ravi 2", Email: "RAVI@shop.in", Password: "other123"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Name: "Kiran", Email: "kiran@shop.in", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "kiran@shop.in", Password: "wrong-pass"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@shop.in", Password: "secret123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, tokens, revoker := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Anu", Email: "anu@shop.in", Password: "secret123"})
	require.NoError(t, err)

	identity, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, *identity))

	revoked, err := revoker.IsRevoked(ctx, identity.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	me, err := svc.CurrentUser(ctx, identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Anu", me.Name)
}
