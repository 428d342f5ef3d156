package ports

import (
	"context"

	"github.com/ait/forum/internal/core/domain"
)

// AccountRepository is the account store. Login is the key.
type AccountRepository interface {
	Exists(ctx context.Context, login string) (bool, error)
	// FindByLogin returns domain.ErrAccountNotFound when absent.
	FindByLogin(ctx context.Context, login string) (*domain.Account, error)
	// Create inserts a new account only if its login is free; otherwise it
	// returns domain.ErrAccountExists and leaves the stored account untouched.
	Create(ctx context.Context, account *domain.Account) error
	// Save replaces the stored account.
	Save(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, login string) error
}

// PasswordHasher is the one-way credential transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest, plaintext string) bool
}
