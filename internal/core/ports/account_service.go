package ports

import (
	"context"

	"github.com/ait/forum/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Login     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateAccountInput is a partial update: nil fields are left untouched.
type UpdateAccountInput struct {
	FirstName *string
	LastName  *string
}

// RoleChange is the outcome of a role grant or revoke.
type RoleChange struct {
	Role    domain.Role
	Roles   domain.RoleSet
	Changed bool
}

// AccountService defines the account lifecycle use cases.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Get(ctx context.Context, login string) (*domain.Account, error)
	Remove(ctx context.Context, login string) (*domain.Account, error)
	Update(ctx context.Context, login string, input UpdateAccountInput) (*domain.Account, error)
	ChangeRole(ctx context.Context, login, role string, add bool) (RoleChange, error)
	ChangePassword(ctx context.Context, login, newPassword string) error
}

// AuthService resolves callers from credentials or tokens.
type AuthService interface {
	Authenticate(ctx context.Context, login, password string) (*domain.Account, error)
	IssueToken(account *domain.Account) (string, error)
	VerifyToken(ctx context.Context, token string) (*domain.Account, error)
}
