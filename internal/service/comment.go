package service

import (
	"context"
	"fmt"

	"yatube/internal/form"
	"yatube/internal/model"
	"yatube/internal/repository"
)

// CommentService appends comments to posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Add creates a comment on a post from a validated form.
// Fails with model.ErrPostNotFound when the post does not exist.
func (s *CommentService) Add(ctx context.Context, postID, authorID int64, f *form.CommentForm) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     f.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}
