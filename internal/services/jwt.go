package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codetrek/internal/common"
	"codetrek/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// TokenService issues HS256 tokens whose jti must stay present in the cache
// for the token to be accepted. Deleting the jti revokes the token.
type TokenService struct {
	jwtSecret string
	ttl       time.Duration
	cache     Cache
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration, cache Cache) *TokenService {
	return &TokenService{jwtSecret: secret, ttl: ttl, cache: cache}
}

func (s *TokenService) Issue(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.cache.Set(ctx, sessionKeyPrefix+claims.ID, user.ID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Validate parses the token and checks that its session is still live.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	var userID int64
	if err := s.cache.Get(ctx, sessionKeyPrefix+claims.ID, &userID); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, common.Unauthorized("Invalid or expired token")
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if userID != claims.UserID {
		return nil, common.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

// Revoke drops the session of a well-formed token.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+claims.ID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, common.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}
