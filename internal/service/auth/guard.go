package auth

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// Guard turns credentials into principals and checks roles.
type Guard struct {
	tokens *TokenManager
	users  repository.UserRepository
}

func NewGuard(tokens *TokenManager, users repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate verifies credential and loads the account it names.
// A missing, malformed, expired or forged credential, or one naming a
// deleted account, yields entity.ErrNotAuthenticated.
func (g *Guard) Authenticate(ctx context.Context, credential string) (entity.Principal, error) {
	if credential == "" {
		return entity.Principal{}, entity.ErrNotAuthenticated
	}
	claims, err := g.tokens.Parse(credential)
	if err != nil {
		return entity.Principal{}, err
	}

	user, err := g.users.FindByID(ctx, entity.UserID(claims.Subject))
	if err != nil {
		return entity.Principal{}, fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		slog.Default().Warn("token names unknown user", slog.String("user_id", claims.Subject))
		return entity.Principal{}, entity.ErrNotAuthenticated
	}
	return user.Principal(), nil
}

// Authorize returns an AuthError unless p's role is one of roles.
func (g *Guard) Authorize(p entity.Principal, roles ...entity.Role) error {
	return Authorize(p, roles...)
}

// Authorize is the stateless form of Guard.Authorize.
func Authorize(p entity.Principal, roles ...entity.Role) error {
	if p.ID == "" {
		return entity.ErrNotAuthenticated
	}
	if !slices.Contains(roles, p.Role) {
		return entity.RoleDenied(p.Role)
	}
	return nil
}
