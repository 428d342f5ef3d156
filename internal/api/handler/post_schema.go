package handler

// periodDateLayout is the calendar date format of the period query bounds.
const periodDateLayout = "2006-01-02"

// --- Request types ---

type newPostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// updatePostRequest overwrites title and content; tags are replaced only
// when present in the body.
type updatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type newCommentRequest struct {
	Message string `json:"message" validate:"required"`
}

type periodRequest struct {
	DateFrom string `json:"dateFrom" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"dateTo" validate:"required,datetime=2006-01-02"`
}

// --- Response types ---

type commentResponse struct {
	User        string `json:"user"`
	Message     string `json:"message"`
	DateCreated string `json:"dateCreated"`
	Likes       int    `json:"likes"`
}

type postResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Author      string            `json:"author"`
	DateCreated string            `json:"dateCreated"`
	Tags        []string          `json:"tags"`
	Likes       int               `json:"likes"`
	Comments    []commentResponse `json:"comments"`
}
