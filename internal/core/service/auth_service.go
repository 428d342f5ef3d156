package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, login string) (bool, error)
	RecordFailure(ctx context.Context, login string) error
	Reset(ctx context.Context, login string) error
}

// tokenClaims binds a token to the password digest it was issued against,
// so a password change revokes every earlier token.
type tokenClaims struct {
	Fingerprint string `json:"pfp"`
	jwt.RegisteredClaims
}

// AuthService resolves request callers from basic credentials or bearer
// tokens and issues those tokens.
type AuthService struct {
	repo      ports.AccountRepository
	hasher    ports.PasswordHasher
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService wires an AuthService. throttle may be nil to disable
// lockout of repeatedly failing logins.
func NewAuthService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	throttle LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Authenticate checks login and password against the stored digest.
// Unknown logins and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*domain.Account, error) {
	if login == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, login)
		if err != nil {
			s.logger.Warn().Err(err).Str("login", login).Msg("login throttle check failed, continuing")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, login)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(account.PasswordDigest, password) {
		s.recordFailure(ctx, login)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, login); err != nil {
			s.logger.Warn().Err(err).Str("login", login).Msg("failed to reset login throttle")
		}
	}
	return account, nil
}

func (s *AuthService) recordFailure(ctx context.Context, login string) {
	s.logger.Debug().Str("login", login).Msg("authentication failed")
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, login); err != nil {
		s.logger.Warn().Err(err).Str("login", login).Msg("failed to record login failure")
	}
}

// IssueToken signs an HS256 token whose subject is the account login.
func (s *AuthService) IssueToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Fingerprint: credentialFingerprint(account.PasswordDigest),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// VerifyToken validates a token and loads its account, so role changes made
// after issuance apply immediately. Tokens issued before the last password
// change are rejected.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.Account, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}

	want := credentialFingerprint(account.PasswordDigest)
	if subtle.ConstantTimeCompare([]byte(claims.Fingerprint), []byte(want)) != 1 {
		s.logger.Debug().Str("login", account.Login).Msg("token predates password change")
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func credentialFingerprint(digest string) string {
	sum := sha256.Sum256([]byte(digest))
	return base64.RawURLEncoding.EncodeToString(sum[:12])
}
