package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"yatube/internal/model"
)

// =============================================================================
// MOCK POST / GROUP REPOSITORIES
// =============================================================================

type mockPostRepository struct {
	createFn       func(ctx context.Context, post *model.Post) error
	getByIDFn      func(ctx context.Context, postID int64) (*model.Post, error)
	updateFn       func(ctx context.Context, post *model.Post) error
	listByScopeFn  func(ctx context.Context, scope model.FeedScope, limit, offset int) ([]model.Post, error)
	countByScopeFn func(ctx context.Context, scope model.FeedScope) (int, error)

	createCalls int
	updateCalls int
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) ListByScope(ctx context.Context, scope model.FeedScope, limit, offset int) ([]model.Post, error) {
	if m.listByScopeFn != nil {
		return m.listByScopeFn(ctx, scope, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByScope(ctx context.Context, scope model.FeedScope) (int, error) {
	if m.countByScopeFn != nil {
		return m.countByScopeFn(ctx, scope)
	}
	return 0, nil
}

type mockGroupRepository struct {
	createFn    func(ctx context.Context, group *model.Group) error
	getByIDFn   func(ctx context.Context, id int64) (*model.Group, error)
	getBySlugFn func(ctx context.Context, slug string) (*model.Group, error)
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.createFn != nil {
		return m.createFn(ctx, group)
	}
	return nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) List(ctx context.Context) ([]model.Group, error) { return nil, nil }

func (m *mockGroupRepository) Delete(ctx context.Context, id int64) error { return nil }

// newestFirst builds n posts ordered the way the repository returns them:
// newest first.
func newestFirst(n int) []model.Post {
	posts := make([]model.Post, n)
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range posts {
		id := int64(n - i)
		posts[i] = model.Post{
			ID:        id,
			AuthorID:  1,
			Text:      fmt.Sprintf("post %d", id),
			CreatedAt: base.Add(time.Duration(id) * time.Minute),
		}
	}
	return posts
}

// windowedPostRepo serves pages out of an in-memory fixture, mimicking the
// LIMIT/OFFSET the SQL implementation runs.
func windowedPostRepo(posts []model.Post) *mockPostRepository {
	return &mockPostRepository{
		countByScopeFn: func(ctx context.Context, scope model.FeedScope) (int, error) {
			return len(posts), nil
		},
		listByScopeFn: func(ctx context.Context, scope model.FeedScope, limit, offset int) ([]model.Post, error) {
			if offset >= len(posts) {
				return nil, nil
			}
			end := offset + limit
			if end > len(posts) {
				end = len(posts)
			}
			return posts[offset:end], nil
		},
	}
}

func newFeedService(postRepo *mockPostRepository, groupRepo *mockGroupRepository, userRepo *mockUserRepository, followRepo *mockFollowRepository, pageSize int) *FeedService {
	if groupRepo == nil {
		groupRepo = &mockGroupRepository{}
	}
	if userRepo == nil {
		userRepo = &mockUserRepository{}
	}
	if followRepo == nil {
		followRepo = &mockFollowRepository{}
	}
	return NewFeedService(postRepo, groupRepo, userRepo, followRepo, pageSize)
}

// =============================================================================
// GLOBAL FEED TESTS
// =============================================================================

func TestFeedService_GetGlobal_Pagination(t *testing.T) {
	posts := newestFirst(13)

	tests := []struct {
		name       string
		requested  int
		wantLen    int
		wantNumber int
		wantFirst  int64 // id of the first post on the page
	}{
		{"first page full", 1, 10, 1, 13},
		{"last page partial", 2, 3, 2, 3},
		{"past the end clamps to last", 99, 3, 2, 3},
		{"zero clamps to first", 0, 10, 1, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFeedService(windowedPostRepo(posts), nil, nil, nil, 10)

			feed, err := svc.GetGlobal(context.Background(), tt.requested)
			if err != nil {
				t.Fatalf("GetGlobal: %v", err)
			}

			if len(feed.Posts) != tt.wantLen {
				t.Errorf("len(Posts) = %d, want %d", len(feed.Posts), tt.wantLen)
			}
			if feed.Page.Number != tt.wantNumber {
				t.Errorf("Page.Number = %d, want %d", feed.Page.Number, tt.wantNumber)
			}
			if feed.Page.TotalItems != 13 {
				t.Errorf("Page.TotalItems = %d, want 13", feed.Page.TotalItems)
			}
			if len(feed.Posts) > 0 && feed.Posts[0].ID != tt.wantFirst {
				t.Errorf("first post id = %d, want %d", feed.Posts[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestFeedService_GetGlobal_Empty(t *testing.T) {
	svc := newFeedService(windowedPostRepo(nil), nil, nil, nil, 10)

	feed, err := svc.GetGlobal(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetGlobal: %v", err)
	}

	if feed.Posts == nil {
		t.Error("Posts should be an empty slice, not nil")
	}
	if len(feed.Posts) != 0 {
		t.Errorf("len(Posts) = %d, want 0", len(feed.Posts))
	}
	if feed.Page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1 for an empty feed", feed.Page.TotalPages)
	}
}

// TestFeedService_GetGlobal_Ordering checks that pages preserve the
// repository's newest-first order and that consecutive pages do not overlap.
func TestFeedService_GetGlobal_Ordering(t *testing.T) {
	posts := newestFirst(25)
	svc := newFeedService(windowedPostRepo(posts), nil, nil, nil, 10)

	seen := map[int64]bool{}
	var prev int64 = 1 << 60
	for page := 1; page <= 3; page++ {
		feed, err := svc.GetGlobal(context.Background(), page)
		if err != nil {
			t.Fatalf("GetGlobal(%d): %v", page, err)
		}
		for _, p := range feed.Posts {
			if seen[p.ID] {
				t.Errorf("post %d appeared on more than one page", p.ID)
			}
			seen[p.ID] = true
			if p.ID > prev {
				t.Errorf("post %d out of order after %d", p.ID, prev)
			}
			prev = p.ID
		}
	}
	if len(seen) != 25 {
		t.Errorf("walked %d distinct posts, want 25", len(seen))
	}
}

// =============================================================================
// GROUP FEED TESTS
// =============================================================================

func TestFeedService_GetGroup(t *testing.T) {
	group := &model.Group{ID: 7, Title: "Cats", Slug: "cats"}
	groupRepo := &mockGroupRepository{
		getBySlugFn: func(ctx context.Context, slug string) (*model.Group, error) {
			if slug == "cats" {
				return group, nil
			}
			return nil, model.ErrGroupNotFound
		},
	}

	var gotScope model.FeedScope
	postRepo := windowedPostRepo(newestFirst(3))
	postRepo.countByScopeFn = func(ctx context.Context, scope model.FeedScope) (int, error) {
		gotScope = scope
		return 3, nil
	}

	svc := newFeedService(postRepo, groupRepo, nil, nil, 10)

	feed, err := svc.GetGroup(context.Background(), "cats", 1)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}

	if feed.Group.Slug != "cats" {
		t.Errorf("Group.Slug = %q", feed.Group.Slug)
	}
	if gotScope.Kind != model.ScopeGroup || gotScope.GroupID != 7 {
		t.Errorf("scope = %+v, want group scope for id 7", gotScope)
	}
}

func TestFeedService_GetGroup_UnknownSlug(t *testing.T) {
	svc := newFeedService(windowedPostRepo(nil), &mockGroupRepository{}, nil, nil, 10)

	_, err := svc.GetGroup(context.Background(), "nope", 1)
	if !errors.Is(err, model.ErrGroupNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrGroupNotFound)
	}
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestFeedService_GetProfile(t *testing.T) {
	author := &model.User{ID: 2, Username: "author"}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(map[string]*model.User{"author": author})}

	followRepo := &mockFollowRepository{
		existsFn: func(ctx context.Context, userID, authorID int64) (bool, error) {
			return userID == 1 && authorID == 2, nil
		},
	}

	svc := newFeedService(windowedPostRepo(newestFirst(4)), nil, userRepo, followRepo, 10)

	viewerID := int64(1)
	profile, err := svc.GetProfile(context.Background(), "author", &viewerID, 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}

	if profile.Author.Username != "author" {
		t.Errorf("Author.Username = %q", profile.Author.Username)
	}
	if profile.PostCount != 4 {
		t.Errorf("PostCount = %d, want 4", profile.PostCount)
	}
	if !profile.IsFollowing {
		t.Error("expected IsFollowing = true")
	}
}

func TestFeedService_GetProfile_AnonymousViewer(t *testing.T) {
	author := &model.User{ID: 2, Username: "author"}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(map[string]*model.User{"author": author})}
	followRepo := &mockFollowRepository{}

	svc := newFeedService(windowedPostRepo(nil), nil, userRepo, followRepo, 10)

	profile, err := svc.GetProfile(context.Background(), "author", nil, 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}

	if profile.IsFollowing {
		t.Error("anonymous viewer reported as following")
	}
	if followRepo.existsCalls != 0 {
		t.Error("anonymous profile view should not query follow state")
	}
}

func TestFeedService_GetProfile_UnknownUser(t *testing.T) {
	svc := newFeedService(windowedPostRepo(nil), nil, &mockUserRepository{}, nil, 10)

	_, err := svc.GetProfile(context.Background(), "ghost", nil, 1)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

// =============================================================================
// FOLLOWING FEED TESTS
// =============================================================================

// TestFeedService_GetFollowing_Anonymous: an anonymous viewer gets a valid
// empty page, never an error and never a storage query.
func TestFeedService_GetFollowing_Anonymous(t *testing.T) {
	postRepo := windowedPostRepo(newestFirst(5))
	counted := false
	postRepo.countByScopeFn = func(ctx context.Context, scope model.FeedScope) (int, error) {
		counted = true
		return 5, nil
	}

	svc := newFeedService(postRepo, nil, nil, nil, 10)

	feed, err := svc.GetFollowing(context.Background(), nil, 1)
	if err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}
	if len(feed.Posts) != 0 {
		t.Errorf("anonymous following feed has %d posts, want 0", len(feed.Posts))
	}
	if feed.Page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", feed.Page.TotalPages)
	}
	if counted {
		t.Error("anonymous following feed should not hit storage")
	}
}

func TestFeedService_GetFollowing_Scope(t *testing.T) {
	var gotScope model.FeedScope
	postRepo := windowedPostRepo(newestFirst(2))
	postRepo.countByScopeFn = func(ctx context.Context, scope model.FeedScope) (int, error) {
		gotScope = scope
		return 2, nil
	}

	svc := newFeedService(postRepo, nil, nil, nil, 10)

	viewerID := int64(9)
	if _, err := svc.GetFollowing(context.Background(), &viewerID, 1); err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}

	if gotScope.Kind != model.ScopeFollowing || gotScope.ViewerID != 9 {
		t.Errorf("scope = %+v, want following scope for viewer 9", gotScope)
	}
}
