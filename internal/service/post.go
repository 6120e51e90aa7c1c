package service

import (
	"context"
	"fmt"

	"yatube/internal/form"
	"yatube/internal/model"
	"yatube/internal/repository"
)

// PostService handles post creation, editing and the detail view. All
// mutations go through validated forms; a post is only ever edited by its
// author.
type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
	}
}

// Create publishes a new post from a validated form. The group reference,
// when present, must name an existing group.
func (s *PostService) Create(ctx context.Context, authorID int64, f *form.PostForm) (*model.Post, error) {
	if f.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *f.GroupID); err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		AuthorID: authorID,
		GroupID:  f.GroupID,
		Text:     f.Text,
		ImageURL: f.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// Edit applies a validated form to an existing post. Only the author may
// edit; anyone else gets model.ErrNotPostOwner. Author and creation
// timestamp never change.
func (s *PostService) Edit(ctx context.Context, postID, editorID int64, f *form.PostForm) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != editorID {
		return nil, model.ErrNotPostOwner
	}

	if f.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *f.GroupID); err != nil {
			return nil, err
		}
	}

	post.Text = f.Text
	post.GroupID = f.GroupID
	post.ImageURL = f.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Detail returns a post with its comments and the author's total post
// count for the sidebar.
func (s *PostService) Detail(ctx context.Context, postID int64) (*model.PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	postCount, err := s.postRepo.CountByScope(ctx, model.AuthorPosts(post.AuthorID))
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}

	return &model.PostDetail{
		Post:      *post,
		PostCount: postCount,
		Comments:  comments,
	}, nil
}
