package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/catalog_api/internal/hash"
	"github.com/Skotchmaster/catalog_api/internal/models"
)

type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, bool)
}

// UserRepo is a read-only set of users fixed at construction.
type UserRepo struct {
	byUsername map[string]models.User
}

func NewUserRepo(users ...models.User) (*UserRepo, error) {
	r := &UserRepo{byUsername: make(map[string]models.User, len(users))}
	for _, u := range users {
		if _, dup := r.byUsername[u.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", u.Username)
		}
		r.byUsername[u.Username] = u
	}
	return r, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (models.User, bool) {
	u, ok := r.byUsername[username]
	return u, ok
}

type SeedUser struct {
	Username string
	Password string
	Role     models.Role
}

// HashSeedUsers assigns ids in order and replaces plaintext passwords with bcrypt hashes.
func HashSeedUsers(cost int, seeds ...SeedUser) ([]models.User, error) {
	users := make([]models.User, 0, len(seeds))
	for i, s := range seeds {
		h, err := hash.HashPassword(s.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", s.Username, err)
		}
		users = append(users, models.User{
			ID:           int64(i + 1),
			Username:     s.Username,
			PasswordHash: h,
			Role:         s.Role,
		})
	}
	return users, nil
}
