package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/core/domain"
)

type stubPostLookup map[string]*domain.Post

func (s stubPostLookup) Get(_ context.Context, id string) (*domain.Post, error) {
	p, ok := s[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

// runGuard executes mw for caller with the given path parameters and returns
// the recorded status code, whether next ran and the returned error.
func runGuard(t *testing.T, mw echo.MiddlewareFunc, caller *domain.Account, params map[string]string) (int, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		c.Set(AccountKey, caller)
	}
	var names, values []string
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec.Code, called, err
}

func account(login string, roles ...domain.Role) *domain.Account {
	return &domain.Account{Login: login, Roles: domain.NewRoleSet(roles...)}
}

func TestRBAC(t *testing.T) {
	mw := RBAC(domain.RoleAdministrator)

	if _, called, _ := runGuard(t, mw, account("admin", domain.RoleAdministrator), nil); !called {
		t.Fatalf("administrator should pass")
	}

	_, called, err := runGuard(t, mw, account("bob", domain.RoleModerator), nil)
	if called || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v (called=%v)", err, called)
	}
}

func TestRBAC_Unauthenticated(t *testing.T) {
	_, called, err := runGuard(t, RBAC(domain.RoleAdministrator), nil, nil)
	var he *echo.HTTPError
	if called || !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v (called=%v)", err, called)
	}
}

func TestSelf(t *testing.T) {
	mw := Self("login")
	params := map[string]string{"login": "bob"}

	if _, called, _ := runGuard(t, mw, account("bob"), params); !called {
		t.Fatalf("owner should pass")
	}
	_, called, err := runGuard(t, mw, account("admin", domain.RoleAdministrator), params)
	if called || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("administrator must not edit another profile, got %v", err)
	}
}

func TestSelfOrRole(t *testing.T) {
	mw := SelfOrRole("login", domain.RoleAdministrator)
	params := map[string]string{"login": "bob"}

	if _, called, _ := runGuard(t, mw, account("bob"), params); !called {
		t.Fatalf("owner should pass")
	}
	if _, called, _ := runGuard(t, mw, account("root", domain.RoleAdministrator), params); !called {
		t.Fatalf("administrator should pass")
	}
	_, called, err := runGuard(t, mw, account("eve", domain.RoleModerator), params)
	if called || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPostOwnerOrRole(t *testing.T) {
	posts := stubPostLookup{"p1": {ID: "p1", Author: "bob"}}
	params := map[string]string{"id": "p1"}

	owner := PostOwnerOrRole(posts, "id")
	if _, called, _ := runGuard(t, owner, account("bob"), params); !called {
		t.Fatalf("author should pass")
	}
	_, called, err := runGuard(t, owner, account("mod", domain.RoleModerator), params)
	if called || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("moderator must not edit, got %v", err)
	}

	ownerOrMod := PostOwnerOrRole(posts, "id", domain.RoleModerator)
	if _, called, _ := runGuard(t, ownerOrMod, account("mod", domain.RoleModerator), params); !called {
		t.Fatalf("moderator should be able to delete")
	}

	_, called, err = runGuard(t, owner, account("bob"), map[string]string{"id": "missing"})
	if called || !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
