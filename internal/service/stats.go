package service

import (
	"context"

	"github.com/aidar/workspace-service/internal/domain"
	"github.com/aidar/workspace-service/internal/repository"
)

// ThemeStats represents the number of active workspaces for a theme
type ThemeStats struct {
	Theme      string `json:"theme"`
	Workspaces int    `json:"workspaces"`
}

// Stats represents combined statistics over active workspaces
type Stats struct {
	ActiveWorkspaces int          `json:"activeWorkspaces"`
	TotalMembers     int          `json:"totalMembers"`
	Owners           int          `json:"owners"`
	Editors          int          `json:"editors"`
	Themes           []ThemeStats `json:"themes"`
}

// StatsService handles administrative statistics queries
type StatsService struct {
	repo repository.WorkspaceRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(repo repository.WorkspaceRepository) *StatsService {
	return &StatsService{repo: repo}
}

// GetStats returns overall statistics
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	count, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	workspaces, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ActiveWorkspaces: count,
		Themes:           make([]ThemeStats, 0),
	}

	// Themes keep the order of first appearance in the newest-first listing
	themeIndex := make(map[string]int)
	for _, ws := range workspaces {
		stats.TotalMembers += len(ws.Members)
		for _, m := range ws.Members {
			switch m.Role {
			case domain.RoleOwner:
				stats.Owners++
			case domain.RoleEditor:
				stats.Editors++
			}
		}

		idx, ok := themeIndex[ws.Theme]
		if !ok {
			idx = len(stats.Themes)
			themeIndex[ws.Theme] = idx
			stats.Themes = append(stats.Themes, ThemeStats{Theme: ws.Theme})
		}
		stats.Themes[idx].Workspaces++
	}

	return stats, nil
}
