package model

import "errors"

// Group is a topical community a post may be published into.
type Group struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrSlugExists    = errors.New("group slug already exists")
)
