package services

import (
	"context"
	"testing"
	"time"

	"codetrek/internal/common"
	"codetrek/internal/models"
	"codetrek/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	tokens := NewTokenService("test-secret", time.Hour, NewMemoryCache())
	return NewAuthService(repositories.NewUserRepository(newTestDB(t)), tokens)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(t)

	reg, err := auth.Register(ctx, &models.RegisterRequest{Username: "ada", Email: "Ada@Example.com", Password: "analytical"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ada@example.com", reg.User.Email)

	user, err := auth.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)

	byName, err := auth.Login(ctx, &models.LoginRequest{Username: "ada", Password: "analytical"})
	require.NoError(t, err)
	assert.NotEqual(t, reg.Token, byName.Token)

	byEmail, err := auth.Login(ctx, &models.LoginRequest{Username: "ada@example.com", Password: "analytical"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, byEmail.User.ID)
}

func TestRegisterErrors(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(t)

	_, err := auth.Register(ctx, &models.RegisterRequest{Username: "ab", Email: "a@b.io", Password: "longenough"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = auth.Register(ctx, &models.RegisterRequest{Username: "grace", Email: "g@example.com", Password: "longenough"})
	require.NoError(t, err)
	_, err = auth.Register(ctx, &models.RegisterRequest{Username: "grace", Email: "other@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "Username or email already exists", common.PublicMessage(err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(t)
	_, err := auth.Register(ctx, &models.RegisterRequest{Username: "linus", Email: "l@example.com", Password: "penguins!"})
	require.NoError(t, err)

	for _, req := range []*models.LoginRequest{
		{Username: "linus", Password: "wrong-password"},
		{Username: "nobody", Password: "penguins!"},
		{Username: "", Password: ""},
	} {
		_, err := auth.Login(ctx, req)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
		assert.Equal(t, "Invalid credentials", common.PublicMessage(err))
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(t)
	reg, err := auth.Register(ctx, &models.RegisterRequest{Username: "ken", Email: "k@example.com", Password: "unix-1969"})
	require.NoError(t, err)

	auth.Logout(ctx, reg.Token)
	_, err = auth.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// Garbage and empty tokens are ignored.
	auth.Logout(ctx, "not-a-token")
	auth.Logout(ctx, "")
}

func TestTokenValidation(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	tokens := NewTokenService("secret-a", time.Hour, cache)
	user := &models.User{ID: 7, Username: "dennis"}

	token, err := tokens.Issue(ctx, user)
	require.NoError(t, err)

	claims, err := tokens.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.NotEmpty(t, claims.ID)

	other := NewTokenService("secret-b", time.Hour, cache)
	_, err = other.Validate(ctx, token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// A correctly signed token without a session is rejected.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{ID: "unknown", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret-a"))
	require.NoError(t, err)
	_, err = tokens.Validate(ctx, forged)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	expired := NewTokenService("secret-a", -time.Minute, cache)
	old, err := expired.Issue(ctx, user)
	require.NoError(t, err)
	_, err = tokens.Validate(ctx, old)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestFallbackUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	auth := NewAuthService(repositories.NewUserRepository(db), NewTokenService("s", time.Hour, NewMemoryCache()))

	_, err := auth.FallbackUser(ctx)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	first := seedUser(t, db, "first")
	seedUser(t, db, "second")
	user, err := auth.FallbackUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, user.ID)
}
