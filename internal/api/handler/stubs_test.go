package handler

import (
	"context"
	"iter"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/api/middleware"
	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error)
	getFn            func(ctx context.Context, login string) (*domain.Account, error)
	removeFn         func(ctx context.Context, login string) (*domain.Account, error)
	updateFn         func(ctx context.Context, login string, input ports.UpdateAccountInput) (*domain.Account, error)
	changeRoleFn     func(ctx context.Context, login, role string, add bool) (ports.RoleChange, error)
	changePasswordFn func(ctx context.Context, login, newPassword string) error
}

func (s *stubAccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountService) Get(ctx context.Context, login string) (*domain.Account, error) {
	return s.getFn(ctx, login)
}

func (s *stubAccountService) Remove(ctx context.Context, login string) (*domain.Account, error) {
	return s.removeFn(ctx, login)
}

func (s *stubAccountService) Update(ctx context.Context, login string, input ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, login, input)
}

func (s *stubAccountService) ChangeRole(ctx context.Context, login, role string, add bool) (ports.RoleChange, error) {
	return s.changeRoleFn(ctx, login, role, add)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, login, newPassword string) error {
	return s.changePasswordFn(ctx, login, newPassword)
}

type stubAuthService struct {
	issueFn func(account *domain.Account) (string, error)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.Account, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) IssueToken(account *domain.Account) (string, error) {
	return s.issueFn(account)
}

func (s *stubAuthService) VerifyToken(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrInvalidCredentials
}

type stubPostService struct {
	createFn     func(ctx context.Context, author string, input ports.CreatePostInput) (*domain.Post, error)
	getFn        func(ctx context.Context, id string) (*domain.Post, error)
	removeFn     func(ctx context.Context, id string) (*domain.Post, error)
	updateFn     func(ctx context.Context, id string, input ports.UpdatePostInput) (*domain.Post, error)
	addCommentFn func(ctx context.Context, id, author, message string) (*domain.Post, error)
	addLikeFn    func(ctx context.Context, id string) error
	byAuthorFn   func(ctx context.Context, author string) iter.Seq2[*domain.Post, error]
	byTagsFn     func(ctx context.Context, tags []string) iter.Seq2[*domain.Post, error]
	byPeriodFn   func(ctx context.Context, from, to time.Time) iter.Seq2[*domain.Post, error]
}

func (s *stubPostService) Create(ctx context.Context, author string, input ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, author, input)
}

func (s *stubPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) Remove(ctx context.Context, id string) (*domain.Post, error) {
	return s.removeFn(ctx, id)
}

func (s *stubPostService) Update(ctx context.Context, id string, input ports.UpdatePostInput) (*domain.Post, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubPostService) AddComment(ctx context.Context, id, author, message string) (*domain.Post, error) {
	return s.addCommentFn(ctx, id, author, message)
}

func (s *stubPostService) AddLike(ctx context.Context, id string) error {
	return s.addLikeFn(ctx, id)
}

func (s *stubPostService) FindByAuthor(ctx context.Context, author string) iter.Seq2[*domain.Post, error] {
	return s.byAuthorFn(ctx, author)
}

func (s *stubPostService) FindByTags(ctx context.Context, tags []string) iter.Seq2[*domain.Post, error] {
	return s.byTagsFn(ctx, tags)
}

func (s *stubPostService) FindByPeriod(ctx context.Context, from, to time.Time) iter.Seq2[*domain.Post, error] {
	return s.byPeriodFn(ctx, from, to)
}

func seqOf(posts ...*domain.Post) iter.Seq2[*domain.Post, error] {
	return func(yield func(*domain.Post, error) bool) {
		for _, p := range posts {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func failingSeq(err error) iter.Seq2[*domain.Post, error] {
	return func(yield func(*domain.Post, error) bool) {
		yield(nil, err)
	}
}

// newContext builds an echo context with a JSON body, path parameters and an
// optional authenticated caller.
func newContext(method, target, body string, params map[string]string, caller *domain.Account) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if caller != nil {
		c.Set(middleware.AccountKey, caller)
	}
	return c, rec
}
