package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"yatube/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postColumns selects a post with its author and (possibly absent) group
// in one query, so feed pages never fan out into per-row lookups. Only the
// image URL is carried, never image bytes.
const postColumns = `
	p.id, p.author_id, p.group_id, p.text, p.image_url, p.created_at,
	u.id AS "author.id", u.username AS "author.username",
	u.first_name AS "author.first_name", u.last_name AS "author.last_name",
	g.id AS "group.id", g.title AS "group.title", g.slug AS "group.slug"
`

const postFrom = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

// postRow flattens the joined columns; group fields are pointers because
// the LEFT JOIN yields NULLs for ungrouped posts.
type postRow struct {
	ID        int64     `db:"id"`
	AuthorID  int64     `db:"author_id"`
	GroupID   *int64    `db:"group_id"`
	Text      string    `db:"text"`
	ImageURL  *string   `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`

	AuthorRowID     int64   `db:"author.id"`
	AuthorUsername  string  `db:"author.username"`
	AuthorFirstName *string `db:"author.first_name"`
	AuthorLastName  *string `db:"author.last_name"`

	GroupRowID *int64  `db:"group.id"`
	GroupTitle *string `db:"group.title"`
	GroupSlug  *string `db:"group.slug"`
}

func (row postRow) toPost() model.Post {
	post := model.Post{
		ID:        row.ID,
		AuthorID:  row.AuthorID,
		GroupID:   row.GroupID,
		Text:      row.Text,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
		Author: &model.UserSummary{
			ID:        row.AuthorRowID,
			Username:  row.AuthorUsername,
			FirstName: row.AuthorFirstName,
			LastName:  row.AuthorLastName,
		},
	}
	if row.GroupRowID != nil {
		post.Group = &model.GroupSummary{
			ID:    *row.GroupRowID,
			Title: *row.GroupTitle,
			Slug:  *row.GroupSlug,
		}
	}
	return post
}

// scopeClause translates a feed scope into a WHERE fragment. Arguments are
// returned separately so callers can append limit/offset after them.
func scopeClause(scope model.FeedScope) (string, []interface{}) {
	switch scope.Kind {
	case model.ScopeGroup:
		return "WHERE p.group_id = $1", []interface{}{scope.GroupID}
	case model.ScopeAuthor:
		return "WHERE p.author_id = $1", []interface{}{scope.AuthorID}
	case model.ScopeFollowing:
		return "WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id = $1)",
			[]interface{}{scope.ViewerID}
	default:
		return "", nil
	}
}

// Create inserts a post and fills in the assigned id and timestamp.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (author_id, group_id, text, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, post.AuthorID, post.GroupID, post.Text, post.ImageURL).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post with author and group joined.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `SELECT` + postColumns + postFrom + `WHERE p.id = $1`

	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// Update persists the mutable fields. created_at and author_id never change.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET text = $1, group_id = $2, image_url = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, post.Text, post.GroupID, post.ImageURL, post.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// ListByScope returns one page of the scoped feed. Ordering is strictly
// newest-first with id as the deterministic tie-breaker.
func (r *postRepository) ListByScope(ctx context.Context, scope model.FeedScope, limit, offset int) ([]model.Post, error) {
	where, args := scopeClause(scope)

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

// CountByScope counts the posts a scope would yield, for pager metadata.
func (r *postRepository) CountByScope(ctx context.Context, scope model.FeedScope) (int, error) {
	where, args := scopeClause(scope)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, where)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
