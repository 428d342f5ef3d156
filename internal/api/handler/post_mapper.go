package handler

import (
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// --- Request → Service input ---

func toCreatePostInput(req newPostRequest) ports.CreatePostInput {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    tags,
	}
}

func toUpdatePostInput(req updatePostRequest) ports.UpdatePostInput {
	return ports.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
}

// parsePeriod converts the validated request into UTC dates; dateTo may not
// precede dateFrom.
func parsePeriod(req periodRequest) (from, to time.Time, err error) {
	from, err = time.Parse(periodDateLayout, req.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "dateFrom must be a date formatted as "+periodDateLayout)
	}
	to, err = time.Parse(periodDateLayout, req.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "dateTo must be a date formatted as "+periodDateLayout)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "dateTo must not be before dateFrom")
	}
	return from, to, nil
}

// --- Domain → Response ---

func toPostResponse(p *domain.Post) postResponse {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)

	comments := make([]commentResponse, 0, len(p.Comments))
	for _, cm := range p.Comments {
		comments = append(comments, commentResponse{
			User:        cm.User,
			Message:     cm.Message,
			DateCreated: formatTime(cm.DateCreated),
			Likes:       cm.Likes,
		})
	}

	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		DateCreated: formatTime(p.DateCreated),
		Tags:        tags,
		Likes:       p.Likes,
		Comments:    comments,
	}
}

// toPostResponses drains seq. The first error aborts the listing.
func toPostResponses(seq iter.Seq2[*domain.Post, error]) ([]postResponse, error) {
	out := []postResponse{}
	for p, err := range seq {
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		out = append(out, toPostResponse(p))
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
