package model

import "time"

// Follow is a directed edge: the user receives the author's posts in
// their followed-authors feed. At most one edge per (user, author) pair.
type Follow struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
