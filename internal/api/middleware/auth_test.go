package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/core/domain"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, login, password string) (*domain.Account, error)
	verifyFn       func(ctx context.Context, token string) (*domain.Account, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, login, password string) (*domain.Account, error) {
	return s.authenticateFn(ctx, login, password)
}

func (s *stubAuthService) IssueToken(*domain.Account) (string, error) { return "", nil }

func (s *stubAuthService) VerifyToken(ctx context.Context, token string) (*domain.Account, error) {
	return s.verifyFn(ctx, token)
}

func basic(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

func runAuth(t *testing.T, stub *stubAuthService, header string) (*httptest.ResponseRecorder, *domain.Account) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Account
	handler := Auth(stub)(func(c echo.Context) error {
		seen, _ = CurrentAccount(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestAuth_Basic(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, login, password string) (*domain.Account, error) {
			if login != "bob" || password != "pa:ss" {
				t.Fatalf("unexpected credentials %q/%q", login, password)
			}
			return &domain.Account{Login: "bob"}, nil
		},
	}

	rec, seen := runAuth(t, stub, basic("bob", "pa:ss"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.Login != "bob" {
		t.Fatalf("account not stored in context: %+v", seen)
	}
}

func TestAuth_Bearer(t *testing.T) {
	stub := &stubAuthService{
		verifyFn: func(_ context.Context, token string) (*domain.Account, error) {
			if token != "tok" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.Account{Login: "alice"}, nil
		},
	}

	rec, seen := runAuth(t, stub, "Bearer tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.Login != "alice" {
		t.Fatalf("account not stored in context: %+v", seen)
	}
}

func TestAuth_Rejects(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.Account, error) {
			return nil, domain.ErrInvalidCredentials
		},
		verifyFn: func(context.Context, string) (*domain.Account, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	cases := map[string]string{
		"missing header": "",
		"unknown scheme": "Token abc",
		"no credentials": "Basic",
		"bad base64":     "Basic !!!",
		"no colon":       "Basic " + base64.StdEncoding.EncodeToString([]byte("bob")),
		"wrong password": basic("bob", "nope"),
		"invalid bearer": "Bearer garbage",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, seen := runAuth(t, stub, header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if seen != nil {
				t.Fatalf("next must not run")
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != `Basic realm="forum"` {
				t.Fatalf("unexpected challenge %q", got)
			}
		})
	}
}

func TestAuth_Throttled(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.Account, error) {
			return nil, domain.ErrTooManyAttempts
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, basic("bob", "x"))
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(stub)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts to propagate, got %v", err)
	}
}
