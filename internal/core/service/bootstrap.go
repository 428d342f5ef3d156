package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ait/forum/internal/core/domain"
)

// Bootstrap makes sure the administrator account exists. It is safe to run
// on every start: an existing admin account is left as is.
func (s *AccountService) Bootstrap(ctx context.Context, password string) error {
	exists, err := s.repo.Exists(ctx, domain.AdminLogin)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if exists {
		s.logger.Debug().Msg("admin account present, bootstrap skipped")
		return nil
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("bootstrap: hash password: %w", err)
	}

	admin := &domain.Account{
		Login:          domain.AdminLogin,
		PasswordDigest: digest,
		Roles:          domain.NewRoleSet(domain.RoleModerator, domain.RoleAdministrator),
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		// Another instance won the race; the account exists either way.
		if errors.Is(err, domain.ErrAccountExists) {
			return nil
		}
		return fmt.Errorf("bootstrap: %w", err)
	}

	s.logger.Info().Str("login", domain.AdminLogin).Msg("admin account created")
	return nil
}
