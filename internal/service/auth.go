package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/catalog_api/internal/hash"
	"github.com/Skotchmaster/catalog_api/internal/repo"
	"github.com/Skotchmaster/catalog_api/internal/tokens"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Users  repo.CredentialStore
	Tokens *tokens.Issuer

	dummyHash string
}

func NewAuthService(users repo.CredentialStore, issuer *tokens.Issuer, cost int) (*AuthService, error) {
	dummy, err := hash.HashPassword("not-a-real-password", cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &AuthService{Users: users, Tokens: issuer, dummyHash: dummy}, nil
}

// Login verifies the credentials and issues an access token. Unknown users and
// wrong passwords return the same error after the same amount of work.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, ok := s.Users.FindByUsername(ctx, username)
	if !ok {
		hash.CheckPassword(s.dummyHash, password)
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return token, exp, nil
}
