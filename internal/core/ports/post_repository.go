package ports

import (
	"context"
	"iter"
	"time"

	"github.com/ait/forum/internal/core/domain"
)

// PostRepository is the post store. The Find* sequences are lazy: every
// range over them runs the query again.
type PostRepository interface {
	// Save inserts or replaces the post keyed by its ID.
	Save(ctx context.Context, post *domain.Post) error
	// FindByID returns domain.ErrPostNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error

	FindByAuthor(ctx context.Context, author string) iter.Seq2[*domain.Post, error]
	// FindByTags yields posts carrying at least one of tags.
	FindByTags(ctx context.Context, tags []string) iter.Seq2[*domain.Post, error]
	// FindByCreatedBetween yields posts with from <= DateCreated < to.
	FindByCreatedBetween(ctx context.Context, from, to time.Time) iter.Seq2[*domain.Post, error]
}
