package services

import (
	"context"
	"errors"
	"fmt"

	"codetrek/internal/common"
	"codetrek/internal/logger"
	"codetrek/internal/models"
	"codetrek/internal/repositories"
	"codetrek/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	users  repositories.UserRepository
	tokens *TokenService
}

func NewAuthService(users repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := s.users.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("Username or email already exists")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return &models.AuthResponse{User: user, Token: token}, nil
}

// Login accepts either the username or the email as the identifier.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	invalid := common.Unauthorized("Invalid credentials")
	if req.Username == "" || req.Password == "" {
		return nil, invalid
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if errors.Is(err, common.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalid
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}

// Logout revokes token. Missing or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.tokens.Revoke(ctx, token); err != nil && !errors.Is(err, common.ErrUnauthorized) {
		logger.Log.Warn("Failed to revoke token", zap.Error(err))
	}
}

// Authenticate resolves the user owning a live token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("Invalid or expired token")
		}
		return nil, err
	}
	return user, nil
}

// FallbackUser returns the first registered user, for development setups
// that call user-scoped endpoints without logging in.
func (s *AuthService) FallbackUser(ctx context.Context) (*models.User, error) {
	user, err := s.users.First(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("Authentication credentials were not provided")
		}
		return nil, err
	}
	return user, nil
}
