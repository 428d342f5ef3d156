package handler

import (
	"iter"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/api/metrics"
	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /forum/post/:author.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        author  path      string          true  "Author login (must be the caller)"
// @Param        body    body      newPostRequest  true  "Post"
// @Success      200     {object}  postResponse
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /forum/post/{author} [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req newPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), c.Param("author"), toCreatePostInput(req))
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Get handles GET /forum/post/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  map[string]string
// @Router       /forum/post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Update handles PUT /forum/post/:id.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "New title, content and optional tags"
// @Success      200   {object}  postResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /forum/post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdatePostInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Remove handles DELETE /forum/post/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /forum/post/{id} [delete]
func (h *PostHandler) Remove(c echo.Context) error {
	post, err := h.service.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// AddComment handles PUT /forum/post/:id/comment/:author.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id      path      string             true  "Post id"
// @Param        author  path      string             true  "Comment author (must be the caller)"
// @Param        body    body      newCommentRequest  true  "Comment"
// @Success      200     {object}  postResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /forum/post/{id}/comment/{author} [put]
func (h *PostHandler) AddComment(c echo.Context) error {
	var req newCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.AddComment(c.Request().Context(), c.Param("id"), c.Param("author"), req.Message)
	if err != nil {
		return err
	}

	metrics.CommentsAddedTotal.Inc()
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// AddLike handles PUT /forum/post/:id/like.
//
// @Summary      Like a post
// @Tags         posts
// @Security     BasicAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /forum/post/{id}/like [put]
func (h *PostHandler) AddLike(c echo.Context) error {
	if err := h.service.AddLike(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.PostLikesTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// FindByAuthor handles GET /forum/posts/author/:author.
//
// @Summary      List posts by author
// @Tags         posts
// @Produce      json
// @Param        author  path      string  true  "Author login"
// @Success      200     {array}   postResponse
// @Router       /forum/posts/author/{author} [get]
func (h *PostHandler) FindByAuthor(c echo.Context) error {
	return h.list(c, "author", h.service.FindByAuthor(c.Request().Context(), c.Param("author")))
}

// FindByTags handles POST /forum/posts/tags.
//
// @Summary      List posts carrying any of the given tags
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      []string  true  "Tags"
// @Success      200   {array}   postResponse
// @Failure      400   {object}  map[string]string
// @Router       /forum/posts/tags [post]
func (h *PostHandler) FindByTags(c echo.Context) error {
	var tags []string
	if err := (&echo.DefaultBinder{}).BindBody(c, &tags); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "body must be a JSON array of tags")
	}
	return h.list(c, "tags", h.service.FindByTags(c.Request().Context(), tags))
}

// FindByPeriod handles POST /forum/posts/period.
//
// @Summary      List posts created within a date range
// @Description  Both bounds are inclusive calendar dates (UTC).
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      periodRequest  true  "Date range"
// @Success      200   {array}   postResponse
// @Failure      400   {object}  map[string]string
// @Router       /forum/posts/period [post]
func (h *PostHandler) FindByPeriod(c echo.Context) error {
	var req periodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	from, to, err := parsePeriod(req)
	if err != nil {
		return err
	}
	return h.list(c, "period", h.service.FindByPeriod(c.Request().Context(), from, to))
}

func (h *PostHandler) list(c echo.Context, finder string, seq iter.Seq2[*domain.Post, error]) error {
	posts, err := toPostResponses(seq)
	if err != nil {
		return err
	}
	metrics.PostQueryResults.WithLabelValues(finder).Observe(float64(len(posts)))
	return c.JSON(http.StatusOK, posts)
}
