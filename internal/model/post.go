package model

import (
	"errors"
	"time"
)

// Post represents a published post with its author and optional group joined.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	GroupID   *int64    `db:"group_id" json:"group_id,omitempty"`
	Text      string    `db:"text" json:"text"`
	ImageURL  *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields (populated by feed queries, not stored on posts)
	Author *UserSummary  `json:"author,omitempty"`
	Group  *GroupSummary `json:"group,omitempty"`
}

// UserSummary is the author projection embedded in posts and comments.
type UserSummary struct {
	ID        int64   `db:"id" json:"id"`
	Username  string  `db:"username" json:"username"`
	FirstName *string `db:"first_name" json:"first_name"`
	LastName  *string `db:"last_name" json:"last_name"`
}

// GroupSummary is the group projection embedded in posts.
type GroupSummary struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
	Slug  string `db:"slug" json:"slug"`
}

// Post constraints
const (
	MaxPostTextLength = 10000
)

// Post errors. The text errors double as the field messages in form
// validation responses.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the owner of this post")
	ErrTextRequired = errors.New("text is required")
	ErrTextTooLong  = errors.New("text too long")
)
