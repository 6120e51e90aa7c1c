package service

import (
	"context"
	"errors"
	"testing"

	"yatube/internal/form"
	"yatube/internal/model"
)

// =============================================================================
// MOCK COMMENT REPOSITORY
// =============================================================================

type mockCommentRepository struct {
	createFn     func(ctx context.Context, comment *model.Comment) error
	listByPostFn func(ctx context.Context, postID int64) ([]model.Comment, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func fixedPostRepo(post *model.Post) *mockPostRepository {
	return &mockPostRepository{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			if post != nil && post.ID == postID {
				copied := *post
				return &copied, nil
			}
			return nil, model.ErrPostNotFound
		},
	}
}

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestPostService_Create(t *testing.T) {
	postRepo := &mockPostRepository{}
	svc := NewPostService(postRepo, &mockGroupRepository{}, &mockCommentRepository{})

	post, err := svc.Create(context.Background(), 1, &form.PostForm{Text: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if post.AuthorID != 1 {
		t.Errorf("AuthorID = %d, want 1", post.AuthorID)
	}
	if post.Text != "hello" {
		t.Errorf("Text = %q", post.Text)
	}
	if postRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", postRepo.createCalls)
	}
}

func TestPostService_Create_UnknownGroup(t *testing.T) {
	postRepo := &mockPostRepository{}
	svc := NewPostService(postRepo, &mockGroupRepository{}, &mockCommentRepository{})

	groupID := int64(42)
	_, err := svc.Create(context.Background(), 1, &form.PostForm{Text: "hello", GroupID: &groupID})

	if !errors.Is(err, model.ErrGroupNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrGroupNotFound)
	}
	if postRepo.createCalls != 0 {
		t.Error("post must not be written when its group does not exist")
	}
}

// =============================================================================
// EDIT TESTS
// =============================================================================

func TestPostService_Edit(t *testing.T) {
	original := &model.Post{ID: 5, AuthorID: 1, Text: "before"}
	postRepo := fixedPostRepo(original)

	var updated *model.Post
	postRepo.updateFn = func(ctx context.Context, post *model.Post) error {
		updated = post
		return nil
	}

	svc := NewPostService(postRepo, &mockGroupRepository{}, &mockCommentRepository{})

	post, err := svc.Edit(context.Background(), 5, 1, &form.PostForm{Text: "after"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if post.Text != "after" {
		t.Errorf("Text = %q, want %q", post.Text, "after")
	}
	// Authorship never changes on edit.
	if updated == nil || updated.AuthorID != 1 {
		t.Errorf("updated author = %v, want 1", updated)
	}
}

// TestPostService_Edit_NotOwner: only the author may edit; anyone else is
// rejected before any write happens.
func TestPostService_Edit_NotOwner(t *testing.T) {
	postRepo := fixedPostRepo(&model.Post{ID: 5, AuthorID: 1, Text: "original"})
	svc := NewPostService(postRepo, &mockGroupRepository{}, &mockCommentRepository{})

	_, err := svc.Edit(context.Background(), 5, 2, &form.PostForm{Text: "hijacked"})

	if !errors.Is(err, model.ErrNotPostOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotPostOwner)
	}
	if postRepo.updateCalls != 0 {
		t.Error("Update must not be called for a non-author edit")
	}
}

func TestPostService_Edit_UnknownPost(t *testing.T) {
	svc := NewPostService(fixedPostRepo(nil), &mockGroupRepository{}, &mockCommentRepository{})

	_, err := svc.Edit(context.Background(), 99, 1, &form.PostForm{Text: "whatever"})
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

// =============================================================================
// DETAIL TESTS
// =============================================================================

func TestPostService_Detail(t *testing.T) {
	postRepo := fixedPostRepo(&model.Post{ID: 5, AuthorID: 1, Text: "hello"})
	postRepo.countByScopeFn = func(ctx context.Context, scope model.FeedScope) (int, error) {
		if scope.Kind != model.ScopeAuthor || scope.AuthorID != 1 {
			t.Errorf("count scope = %+v, want author scope for id 1", scope)
		}
		return 3, nil
	}

	commentRepo := &mockCommentRepository{
		listByPostFn: func(ctx context.Context, postID int64) ([]model.Comment, error) {
			return []model.Comment{{ID: 1, PostID: postID, Text: "first"}}, nil
		},
	}

	svc := NewPostService(postRepo, &mockGroupRepository{}, commentRepo)

	detail, err := svc.Detail(context.Background(), 5)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}

	if detail.Post.ID != 5 {
		t.Errorf("Post.ID = %d, want 5", detail.Post.ID)
	}
	if detail.PostCount != 3 {
		t.Errorf("PostCount = %d, want 3", detail.PostCount)
	}
	if len(detail.Comments) != 1 {
		t.Errorf("len(Comments) = %d, want 1", len(detail.Comments))
	}
}

func TestPostService_Detail_NoComments(t *testing.T) {
	postRepo := fixedPostRepo(&model.Post{ID: 5, AuthorID: 1})
	svc := NewPostService(postRepo, &mockGroupRepository{}, &mockCommentRepository{})

	detail, err := svc.Detail(context.Background(), 5)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.Comments == nil {
		t.Error("Comments should be an empty slice, not nil")
	}
}

// =============================================================================
// COMMENT SERVICE TESTS
// =============================================================================

func TestCommentService_Add(t *testing.T) {
	postRepo := fixedPostRepo(&model.Post{ID: 5, AuthorID: 1})
	commentRepo := &mockCommentRepository{}
	svc := NewCommentService(commentRepo, postRepo)

	comment, err := svc.Add(context.Background(), 5, 2, &form.CommentForm{Text: "nice"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if comment.PostID != 5 || comment.AuthorID != 2 {
		t.Errorf("comment = %+v", comment)
	}
	if commentRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", commentRepo.createCalls)
	}
}

func TestCommentService_Add_UnknownPost(t *testing.T) {
	commentRepo := &mockCommentRepository{}
	svc := NewCommentService(commentRepo, fixedPostRepo(nil))

	_, err := svc.Add(context.Background(), 99, 2, &form.CommentForm{Text: "nice"})

	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
	if commentRepo.createCalls != 0 {
		t.Error("comment must not be written for a missing post")
	}
}
