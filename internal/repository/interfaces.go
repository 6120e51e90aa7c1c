package repository

import (
	"context"
	"time"

	"yatube/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	// Delete removes a group; posts referencing it keep their rows with
	// group_id set NULL by the schema's referential action.
	Delete(ctx context.Context, id int64) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// Update persists text, group and image changes. Author and creation
	// timestamp are immutable.
	Update(ctx context.Context, post *model.Post) error
	// ListByScope returns one page of the scoped feed, newest first, with
	// author and group joined.
	ListByScope(ctx context.Context, scope model.FeedScope, limit, offset int) ([]model.Post, error)
	CountByScope(ctx context.Context, scope model.FeedScope) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// ListByPost returns all comments on a post, oldest first, with
	// author joined.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

type FollowRepository interface {
	// Create inserts the edge unless it already exists. Returns true when
	// a new edge was inserted; a concurrent duplicate is absorbed by the
	// uniqueness constraint and reported as false, never as an error.
	Create(ctx context.Context, userID, authorID int64) (bool, error)
	// Delete removes the edge if present. Returns true when an edge was
	// actually deleted.
	Delete(ctx context.Context, userID, authorID int64) (bool, error)
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
