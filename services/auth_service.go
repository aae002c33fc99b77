package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mithai-mahal/models"
	"mithai-mahal/utils"
)

type AuthService struct {
	users   UserStore
	tokens  TokenIssuer
	revoker TokenRevoker
}

func NewAuthService(users UserStore, tokens TokenIssuer, revoker TokenRevoker) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	existingUser, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	if existingUser != nil {
		return nil, models.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(*user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	return s.issue(*user)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, identity models.Identity) error {
	if identity.TokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, identity.TokenID, identity.ExpiresAt)
}

func (s *AuthService) issue(user models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
