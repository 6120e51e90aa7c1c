package service

import (
	"context"
	"fmt"

	"yatube/internal/model"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

// FeedService composes the four feed shapes: global, group, author profile
// and followed-authors. Slug and username resolution happens here so the
// repositories only ever see concrete IDs.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	pageSize   int
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	pageSize int,
) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageSize:   pageSize,
	}
}

// PageSize returns the configured posts-per-page constant.
func (s *FeedService) PageSize() int {
	return s.pageSize
}

// GetGlobal returns one page of the unscoped feed.
func (s *FeedService) GetGlobal(ctx context.Context, page int) (*model.FeedPage, error) {
	return s.fetchPage(ctx, model.AllPosts(), page)
}

// ListGroups returns every group for the navigation index.
func (s *FeedService) ListGroups(ctx context.Context) ([]model.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.Group{}
	}
	return groups, nil
}

// GetGroup returns one page of a group's feed.
// Fails with model.ErrGroupNotFound for an unknown slug.
func (s *FeedService) GetGroup(ctx context.Context, slug string, page int) (*model.GroupFeedPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	feed, err := s.fetchPage(ctx, model.GroupPosts(group.ID), page)
	if err != nil {
		return nil, err
	}

	return &model.GroupFeedPage{Group: *group, FeedPage: *feed}, nil
}

// GetProfile returns one page of an author's feed plus profile context:
// the author's total post count and whether the viewer follows them.
// Fails with model.ErrUserNotFound for an unknown username.
func (s *FeedService) GetProfile(ctx context.Context, username string, viewerID *int64, page int) (*model.ProfilePage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	scope := model.AuthorPosts(author.ID)
	feed, err := s.fetchPage(ctx, scope, page)
	if err != nil {
		return nil, err
	}

	// Anonymous viewers never follow anyone; skip the storage round trip.
	isFollowing := false
	if viewerID != nil && *viewerID != author.ID {
		isFollowing, err = s.followRepo.Exists(ctx, *viewerID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("check follow status: %w", err)
		}
	}

	return &model.ProfilePage{
		Author: model.UserSummary{
			ID:        author.ID,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
		PostCount:   feed.Page.TotalItems,
		IsFollowing: isFollowing,
		FeedPage:    *feed,
	}, nil
}

// GetFollowing returns one page of posts by authors the viewer follows.
// An anonymous viewer gets a valid empty feed, not an error.
func (s *FeedService) GetFollowing(ctx context.Context, viewerID *int64, page int) (*model.FeedPage, error) {
	if viewerID == nil {
		return &model.FeedPage{
			Posts: []model.Post{},
			Page:  toPageMeta(pagination.New(0, s.pageSize, page)),
		}, nil
	}
	return s.fetchPage(ctx, model.FollowedPosts(*viewerID), page)
}

// fetchPage counts the scope, clamps the requested page, and loads the
// resulting window.
func (s *FeedService) fetchPage(ctx context.Context, scope model.FeedScope, requested int) (*model.FeedPage, error) {
	total, err := s.postRepo.CountByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	page := pagination.New(total, s.pageSize, requested)

	posts, err := s.postRepo.ListByScope(ctx, scope, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}

	return &model.FeedPage{Posts: posts, Page: toPageMeta(page)}, nil
}

func toPageMeta(p pagination.Page) model.PageMeta {
	return model.PageMeta{
		Number:     p.Number,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}
