package service

import (
	"context"
	"log"

	"yatube/internal/repository"
)

// FollowService maintains follow edges with idempotent semantics: both
// Follow and Unfollow may be repeated (or raced) without surfacing
// duplicate-key or missing-row failures.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge from follower to the named author.
// Unknown author fails with model.ErrUserNotFound. Following yourself is a
// silent no-op: no edge is created and no error is reported.
func (s *FollowService) Follow(ctx context.Context, followerID int64, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	if author.ID == followerID {
		return nil
	}

	inserted, err := s.followRepo.Create(ctx, followerID, author.ID)
	if err != nil {
		return err
	}
	if inserted {
		log.Printf("[FollowService] Follow: follower=%d author=%d", followerID, author.ID)
	}

	return nil
}

// Unfollow removes the edge from follower to the named author.
// Unknown author fails with model.ErrUserNotFound; a missing edge is a
// no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	deleted, err := s.followRepo.Delete(ctx, followerID, author.ID)
	if err != nil {
		return err
	}
	if deleted {
		log.Printf("[FollowService] Unfollow: follower=%d author=%d", followerID, author.ID)
	}

	return nil
}

// IsFollowing reports whether the viewer follows the author. A nil viewer
// is anonymous and never follows anyone; storage is not consulted.
func (s *FollowService) IsFollowing(ctx context.Context, viewerID *int64, authorID int64) (bool, error) {
	if viewerID == nil {
		return false, nil
	}
	return s.followRepo.Exists(ctx, *viewerID, authorID)
}
