package service

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return ulid.Make().String() },
	}
}

// Create stores a new post with no likes and no comments. The creation time
// is truncated to milliseconds, the resolution of the store.
func (s *PostService) Create(ctx context.Context, author string, input ports.CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:          s.newID(),
		Title:       input.Title,
		Content:     input.Content,
		Author:      author,
		DateCreated: s.now().Truncate(time.Millisecond),
		Tags:        uniqueTags(input.Tags),
		Likes:       0,
		Comments:    []domain.Comment{},
	}

	if err := s.repo.Save(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("author", author).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info().Str("post_id", post.ID).Str("author", author).Msg("post created")
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) Remove(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("remove post: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("remove post: %w", err)
	}

	s.logger.Info().Str("post_id", id).Msg("post removed")
	return post, nil
}

// Update overwrites title and content; the tag set is replaced only when
// input.Tags is non-nil.
func (s *PostService) Update(ctx context.Context, id string, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	post.Title = input.Title
	post.Content = input.Content
	if input.Tags != nil {
		post.Tags = uniqueTags(input.Tags)
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *PostService) AddComment(ctx context.Context, id, author, message string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	post.AddComment(author, message, s.now().Truncate(time.Millisecond))

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return post, nil
}

func (s *PostService) AddLike(ctx context.Context, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("add like: %w", err)
	}

	post.AddLike()

	if err := s.repo.Save(ctx, post); err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (s *PostService) FindByAuthor(ctx context.Context, author string) iter.Seq2[*domain.Post, error] {
	return s.repo.FindByAuthor(ctx, author)
}

func (s *PostService) FindByTags(ctx context.Context, tags []string) iter.Seq2[*domain.Post, error] {
	return s.repo.FindByTags(ctx, uniqueTags(tags))
}

// FindByPeriod widens [dateFrom, dateTo] to whole UTC days.
func (s *PostService) FindByPeriod(ctx context.Context, dateFrom, dateTo time.Time) iter.Seq2[*domain.Post, error] {
	from := startOfDay(dateFrom)
	to := startOfDay(dateTo).AddDate(0, 0, 1)
	return s.repo.FindByCreatedBetween(ctx, from, to)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// uniqueTags drops duplicates and empty tags, keeping first-seen order.
func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
