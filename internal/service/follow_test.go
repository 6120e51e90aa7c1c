package service

import (
	"context"
	"errors"
	"testing"

	"yatube/internal/model"
)

// =============================================================================
// MOCK FOLLOW REPOSITORY
// =============================================================================

type mockFollowRepository struct {
	createFn func(ctx context.Context, userID, authorID int64) (bool, error)
	deleteFn func(ctx context.Context, userID, authorID int64) (bool, error)
	existsFn func(ctx context.Context, userID, authorID int64) (bool, error)

	createCalls int
	deleteCalls int
	existsCalls int
}

func (m *mockFollowRepository) Create(ctx context.Context, userID, authorID int64) (bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, authorID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, authorID)
	}
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	m.existsCalls++
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, authorID)
	}
	return false, nil
}

func userByUsername(users map[string]*model.User) func(context.Context, string) (*model.User, error) {
	return func(_ context.Context, username string) (*model.User, error) {
		if u, ok := users[username]; ok {
			return u, nil
		}
		return nil, model.ErrUserNotFound
	}
}

// =============================================================================
// FOLLOW TESTS
// =============================================================================

func TestFollowService_Follow(t *testing.T) {
	author := &model.User{ID: 2, Username: "author"}
	users := map[string]*model.User{"author": author}

	followRepo := &mockFollowRepository{}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(users)}
	svc := NewFollowService(followRepo, userRepo)

	if err := svc.Follow(context.Background(), 1, "author"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if followRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", followRepo.createCalls)
	}
}

// TestFollowService_Follow_Duplicate: following someone you already follow
// must not surface an error; the existing edge simply stands.
func TestFollowService_Follow_Duplicate(t *testing.T) {
	users := map[string]*model.User{"author": {ID: 2, Username: "author"}}

	followRepo := &mockFollowRepository{
		createFn: func(ctx context.Context, userID, authorID int64) (bool, error) {
			return false, nil // edge already present
		},
	}
	svc := NewFollowService(followRepo, &mockUserRepository{getByUsernameFn: userByUsername(users)})

	if err := svc.Follow(context.Background(), 1, "author"); err != nil {
		t.Fatalf("duplicate follow surfaced an error: %v", err)
	}
	if err := svc.Follow(context.Background(), 1, "author"); err != nil {
		t.Fatalf("repeated follow surfaced an error: %v", err)
	}
}

// TestFollowService_Follow_Self: following yourself is silently ignored and
// never reaches storage.
func TestFollowService_Follow_Self(t *testing.T) {
	users := map[string]*model.User{"leo": {ID: 1, Username: "leo"}}

	followRepo := &mockFollowRepository{}
	svc := NewFollowService(followRepo, &mockUserRepository{getByUsernameFn: userByUsername(users)})

	if err := svc.Follow(context.Background(), 1, "leo"); err != nil {
		t.Fatalf("self-follow surfaced an error: %v", err)
	}
	if followRepo.createCalls != 0 {
		t.Errorf("self-follow reached storage: Create called %d times", followRepo.createCalls)
	}
}

func TestFollowService_Follow_UnknownAuthor(t *testing.T) {
	followRepo := &mockFollowRepository{}
	svc := NewFollowService(followRepo, &mockUserRepository{})

	err := svc.Follow(context.Background(), 1, "ghost")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
	if followRepo.createCalls != 0 {
		t.Error("Create should not be called for an unknown author")
	}
}

// =============================================================================
// UNFOLLOW TESTS
// =============================================================================

func TestFollowService_Unfollow(t *testing.T) {
	users := map[string]*model.User{"author": {ID: 2, Username: "author"}}

	followRepo := &mockFollowRepository{}
	svc := NewFollowService(followRepo, &mockUserRepository{getByUsernameFn: userByUsername(users)})

	if err := svc.Unfollow(context.Background(), 1, "author"); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if followRepo.deleteCalls != 1 {
		t.Errorf("Delete called %d times, want 1", followRepo.deleteCalls)
	}
}

// TestFollowService_Unfollow_MissingEdge: unfollowing someone you never
// followed is a no-op, not an error.
func TestFollowService_Unfollow_MissingEdge(t *testing.T) {
	users := map[string]*model.User{"author": {ID: 2, Username: "author"}}

	followRepo := &mockFollowRepository{
		deleteFn: func(ctx context.Context, userID, authorID int64) (bool, error) {
			return false, nil // nothing to delete
		},
	}
	svc := NewFollowService(followRepo, &mockUserRepository{getByUsernameFn: userByUsername(users)})

	if err := svc.Unfollow(context.Background(), 1, "author"); err != nil {
		t.Fatalf("unfollow of a missing edge surfaced an error: %v", err)
	}
}

func TestFollowService_Unfollow_UnknownAuthor(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, &mockUserRepository{})

	err := svc.Unfollow(context.Background(), 1, "ghost")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

// =============================================================================
// IS-FOLLOWING TESTS
// =============================================================================

func TestFollowService_IsFollowing_Anonymous(t *testing.T) {
	followRepo := &mockFollowRepository{}
	svc := NewFollowService(followRepo, &mockUserRepository{})

	following, err := svc.IsFollowing(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if following {
		t.Error("anonymous viewer reported as following")
	}
	if followRepo.existsCalls != 0 {
		t.Error("anonymous check should not hit storage")
	}
}

func TestFollowService_IsFollowing(t *testing.T) {
	viewerID := int64(1)
	followRepo := &mockFollowRepository{
		existsFn: func(ctx context.Context, userID, authorID int64) (bool, error) {
			return userID == 1 && authorID == 2, nil
		},
	}
	svc := NewFollowService(followRepo, &mockUserRepository{})

	following, err := svc.IsFollowing(context.Background(), &viewerID, 2)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if !following {
		t.Error("expected following = true")
	}
}
