package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/core/domain"
)

// PostLookup loads the post a route parameter refers to.
type PostLookup interface {
	Get(ctx context.Context, id string) (*domain.Post, error)
}

// RBAC allows callers holding at least one of allowedRoles.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return guard(func(c echo.Context, caller *domain.Account) (bool, error) {
		return hasAnyRole(caller, allowedRoles), nil
	})
}

// Self allows only the caller whose login equals the named path parameter.
func Self(param string) echo.MiddlewareFunc {
	return guard(func(c echo.Context, caller *domain.Account) (bool, error) {
		return c.Param(param) == caller.Login, nil
	})
}

// SelfOrRole allows the caller named by the path parameter, or any caller
// holding one of roles.
func SelfOrRole(param string, roles ...domain.Role) echo.MiddlewareFunc {
	return guard(func(c echo.Context, caller *domain.Account) (bool, error) {
		return c.Param(param) == caller.Login || hasAnyRole(caller, roles), nil
	})
}

// PostOwnerOrRole allows the author of the post identified by the path
// parameter, or any caller holding one of roles. A missing post surfaces as
// the lookup error so the client sees 404.
func PostOwnerOrRole(posts PostLookup, param string, roles ...domain.Role) echo.MiddlewareFunc {
	return guard(func(c echo.Context, caller *domain.Account) (bool, error) {
		if hasAnyRole(caller, roles) {
			return true, nil
		}
		post, err := posts.Get(c.Request().Context(), c.Param(param))
		if err != nil {
			return false, err
		}
		return post.Author == caller.Login, nil
	})
}

func guard(allow func(c echo.Context, caller *domain.Account) (bool, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := CurrentAccount(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			allowed, err := allow(c, caller)
			if err != nil {
				return err
			}
			if !allowed {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

func hasAnyRole(a *domain.Account, roles []domain.Role) bool {
	for _, r := range roles {
		if a.HasRole(r) {
			return true
		}
	}
	return false
}
