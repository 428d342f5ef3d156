package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// AccountService implements the account lifecycle: registration, profile
// edits, role grants and password changes. Every operation is a single
// fetch-then-persist step against the account store.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, logger: logger}
}

// Register creates an account with an empty role set. The insert is
// conditional on the login being free, so a duplicate registration never
// overwrites the existing account.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: login and password are required", domain.ErrInvalidInput)
	}
	// Basic credentials split at the first colon.
	if strings.Contains(login, ":") {
		return nil, fmt.Errorf("%w: login must not contain ':'", domain.ErrInvalidInput)
	}

	digest, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Login:          login,
		PasswordDigest: digest,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Roles:          domain.NewRoleSet(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("login", login).Msg("failed to register account")
		return nil, fmt.Errorf("register account: %w", err)
	}

	s.logger.Info().Str("login", login).Msg("account registered")
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, login string) (*domain.Account, error) {
	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// Remove deletes the account and returns its last stored state.
func (s *AccountService) Remove(ctx context.Context, login string) (*domain.Account, error) {
	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("remove account: %w", err)
	}
	if err := s.repo.Delete(ctx, login); err != nil {
		return nil, fmt.Errorf("remove account: %w", err)
	}

	s.logger.Info().Str("login", login).Msg("account removed")
	return account, nil
}

// Update overwrites only the fields present in input.
func (s *AccountService) Update(ctx context.Context, login string, input ports.UpdateAccountInput) (*domain.Account, error) {
	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	if input.FirstName != nil {
		account.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		account.LastName = *input.LastName
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

// ChangeRole grants (add=true) or revokes a role. The token is matched
// case-insensitively; the account is written only when its role set changed.
func (s *AccountService) ChangeRole(ctx context.Context, login, role string, add bool) (ports.RoleChange, error) {
	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return ports.RoleChange{}, fmt.Errorf("change role: %w", err)
	}

	r, err := domain.ParseRole(role)
	if err != nil {
		return ports.RoleChange{}, fmt.Errorf("change role %q: %w", role, err)
	}

	var changed bool
	if add {
		changed = account.AddRole(r)
	} else {
		changed = account.RemoveRole(r)
	}

	if changed {
		if err := s.repo.Save(ctx, account); err != nil {
			return ports.RoleChange{}, fmt.Errorf("change role: %w", err)
		}
		s.logger.Info().
			Str("login", login).
			Str("role", string(r)).
			Bool("granted", add).
			Msg("role changed")
	}

	roles := domain.NewRoleSet()
	if account.Roles != nil {
		roles = account.Roles.Clone()
	}
	return ports.RoleChange{Role: r, Roles: roles, Changed: changed}, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, login, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	digest, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	account.PasswordDigest = digest

	if err := s.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.logger.Info().Str("login", login).Msg("password changed")
	return nil
}

// hashPassword passes hasher input errors through unwrapped so the client
// sees the hasher's own message.
func (s *AccountService) hashPassword(password string) (string, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return "", err
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return digest, nil
}
