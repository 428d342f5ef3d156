package service

import (
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ait/forum/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	saves    int
	creates  int
	saveErr  error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Roles != nil {
		c.Roles = a.Roles.Clone()
	}
	return &c
}

func (r *stubAccountRepo) Exists(_ context.Context, login string) (bool, error) {
	_, ok := r.accounts[login]
	return ok, nil
}

func (r *stubAccountRepo) FindByLogin(_ context.Context, login string) (*domain.Account, error) {
	a, ok := r.accounts[login]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	if _, exists := r.accounts[a.Login]; exists {
		return domain.ErrAccountExists
	}
	r.creates++
	r.accounts[a.Login] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) Save(_ context.Context, a *domain.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.accounts[a.Login] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, login string) error {
	delete(r.accounts, login)
	return nil
}

// prefixHasher is a transparent stand-in for bcrypt.
type prefixHasher struct{}

func (prefixHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (prefixHasher) Verify(digest, p string) bool { return digest == "hashed:"+p }

type stubPostRepo struct {
	posts   map[string]*domain.Post
	saveErr error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	c.Comments = append([]domain.Comment(nil), p.Comments...)
	return &c
}

func (r *stubPostRepo) Save(_ context.Context, p *domain.Post) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) filter(match func(*domain.Post) bool) iter.Seq2[*domain.Post, error] {
	return func(yield func(*domain.Post, error) bool) {
		for _, p := range r.posts {
			if !match(p) {
				continue
			}
			if !yield(clonePost(p), nil) {
				return
			}
		}
	}
}

func (r *stubPostRepo) FindByAuthor(_ context.Context, author string) iter.Seq2[*domain.Post, error] {
	return r.filter(func(p *domain.Post) bool { return p.Author == author })
}

func (r *stubPostRepo) FindByTags(_ context.Context, tags []string) iter.Seq2[*domain.Post, error] {
	return r.filter(func(p *domain.Post) bool { return sharesTag(p.Tags, tags) })
}

func (r *stubPostRepo) FindByCreatedBetween(_ context.Context, from, to time.Time) iter.Seq2[*domain.Post, error] {
	return r.filter(func(p *domain.Post) bool {
		return !p.DateCreated.Before(from) && p.DateCreated.Before(to)
	})
}

type stubThrottle struct {
	failures  map[string]int
	limit     int
	blockErr  error
	resetsFor []string
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Blocked(_ context.Context, login string) (bool, error) {
	if t.blockErr != nil {
		return false, t.blockErr
	}
	return t.failures[login] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, login string) error {
	t.failures[login]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, login string) error {
	delete(t.failures, login)
	t.resetsFor = append(t.resetsFor, login)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func collect(seq iter.Seq2[*domain.Post, error]) ([]*domain.Post, error) {
	var out []*domain.Post
	for p, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func ids(posts []*domain.Post) string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return strings.Join(out, ",")
}

func strPtr(s string) *string { return &s }

// sharesTag reports whether have and want intersect.
func sharesTag(have, want []string) bool {
	return slices.ContainsFunc(have, func(t string) bool { return slices.Contains(want, t) })
}
