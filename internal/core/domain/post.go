package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")

// Comment is a single entry in a post's append-only discussion.
type Comment struct {
	User        string    `json:"user" bson:"user"`
	Message     string    `json:"message" bson:"message"`
	DateCreated time.Time `json:"date_created" bson:"date_created"`
	Likes       int       `json:"likes" bson:"likes"`
}

// Post is a user-authored forum entry. Author is the denormalized login of
// the writer and is not checked against the account store.
type Post struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	Author      string    `json:"author" bson:"author"`
	DateCreated time.Time `json:"date_created" bson:"date_created"`
	Tags        []string  `json:"tags" bson:"tags"`
	Likes       int       `json:"likes" bson:"likes"`
	Comments    []Comment `json:"comments" bson:"comments"`
}

// AddComment appends a comment stamped with at.
func (p *Post) AddComment(user, message string, at time.Time) {
	p.Comments = append(p.Comments, Comment{
		User:        user,
		Message:     message,
		DateCreated: at,
	})
}

func (p *Post) AddLike() {
	p.Likes++
}
