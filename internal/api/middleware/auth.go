package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/api/metrics"
	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// AccountKey is the echo context key holding the authenticated *domain.Account.
const AccountKey = "account"

const basicChallenge = `Basic realm="forum"`

// Auth resolves the caller from either HTTP Basic credentials or a bearer
// token issued by /account/login, and stores the account under AccountKey.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "missing", "missing authorization header")
			}

			scheme, credentials, ok := strings.Cut(authHeader, " ")
			if !ok || credentials == "" {
				return unauthorized(c, "malformed", "invalid authorization header")
			}

			var (
				account *domain.Account
				err     error
			)
			switch {
			case strings.EqualFold(scheme, "basic"):
				login, password, ok := decodeBasic(credentials)
				if !ok {
					return unauthorized(c, "malformed", "invalid authorization header")
				}
				account, err = auth.Authenticate(c.Request().Context(), login, password)
			case strings.EqualFold(scheme, "bearer"):
				account, err = auth.VerifyToken(c.Request().Context(), credentials)
			default:
				return unauthorized(c, "malformed", "unsupported authorization scheme")
			}

			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTooManyAttempts):
					metrics.AuthFailuresTotal.WithLabelValues("throttled").Inc()
					return err
				case errors.Is(err, domain.ErrInvalidCredentials):
					reason := "invalid_credentials"
					if strings.EqualFold(scheme, "bearer") {
						reason = "invalid_token"
					}
					return unauthorized(c, reason, "invalid credentials")
				default:
					return err
				}
			}

			c.Set(AccountKey, account)
			return next(c)
		}
	}
}

// CurrentAccount returns the account stored by Auth, if any.
func CurrentAccount(c echo.Context) (*domain.Account, bool) {
	account, ok := c.Get(AccountKey).(*domain.Account)
	return account, ok && account != nil
}

func decodeBasic(encoded string) (login, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(raw), ":")
}

func unauthorized(c echo.Context, reason, msg string) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicChallenge)
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
