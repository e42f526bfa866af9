package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/repo"
	"github.com/Skotchmaster/catalog_api/internal/tokens"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	users, err := repo.HashSeedUsers(bcrypt.MinCost,
		repo.SeedUser{Username: "admin", Password: "admin123", Role: models.RoleAdmin},
		repo.SeedUser{Username: "user", Password: "user123", Role: models.RoleUser},
	)
	require.NoError(t, err)
	store, err := repo.NewUserRepo(users...)
	require.NoError(t, err)

	svc, err := NewAuthService(store, tokens.NewIssuer([]byte("test-jwt-secret"), time.Hour), bcrypt.MinCost)
	require.NoError(t, err)
	return svc
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuth(t)

	token, exp, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.Tokens.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 1, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := newTestAuth(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "nope"},
		{name: "unknown user", username: "ghost", password: "admin123"},
		{name: "empty", username: "", password: ""},
		{name: "other user's password", username: "user", password: "admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := svc.Login(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}
