package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"yatube/internal/model"
	"yatube/internal/repository"
)

// GroupService manages the administratively-curated group catalog. Groups
// are never created through the HTTP surface; they arrive via the seed
// file at startup.
type GroupService struct {
	repo repository.GroupRepository
}

func NewGroupService(repo repository.GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

// Seed ensures every listed group exists. A slug that is already taken is
// left untouched, so re-seeding on every start is idempotent. Returns how
// many groups were actually created.
func (s *GroupService) Seed(ctx context.Context, groups []model.Group) (int, error) {
	created := 0
	for i := range groups {
		g := groups[i]
		if err := s.repo.Create(ctx, &g); err != nil {
			if errors.Is(err, model.ErrSlugExists) {
				continue
			}
			return created, fmt.Errorf("seed group %q: %w", g.Slug, err)
		}
		created++
	}
	return created, nil
}

// LoadGroupSeedFile reads a JSON array of groups for Seed. Every entry
// must carry a title and a slug.
func LoadGroupSeedFile(path string) ([]model.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read group seed file: %w", err)
	}

	var groups []model.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse group seed file: %w", err)
	}

	for i, g := range groups {
		if strings.TrimSpace(g.Title) == "" || strings.TrimSpace(g.Slug) == "" {
			return nil, fmt.Errorf("group seed entry %d: title and slug are required", i)
		}
	}
	return groups, nil
}
