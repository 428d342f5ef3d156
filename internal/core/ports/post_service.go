package ports

import (
	"context"
	"iter"
	"time"

	"github.com/ait/forum/internal/core/domain"
)

// CreatePostInput carries the author-supplied fields of a new post.
type CreatePostInput struct {
	Title   string
	Content string
	Tags    []string
}

// UpdatePostInput replaces title and content; Tags replaces the tag set only
// when non-nil.
type UpdatePostInput struct {
	Title   string
	Content string
	Tags    []string
}

// PostService defines the post lifecycle use cases.
type PostService interface {
	Create(ctx context.Context, author string, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Remove(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, id string, input UpdatePostInput) (*domain.Post, error)
	AddComment(ctx context.Context, id, author, message string) (*domain.Post, error)
	AddLike(ctx context.Context, id string) error

	FindByAuthor(ctx context.Context, author string) iter.Seq2[*domain.Post, error]
	FindByTags(ctx context.Context, tags []string) iter.Seq2[*domain.Post, error]
	// FindByPeriod matches posts created on any calendar day (UTC) from
	// dateFrom through dateTo inclusive.
	FindByPeriod(ctx context.Context, dateFrom, dateTo time.Time) iter.Seq2[*domain.Post, error]
}
