package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aidar/workspace-service/internal/domain"
	"github.com/aidar/workspace-service/internal/repository"
)

// Example users referenced by the seed data
var (
	SeedUserJuan  = uuid.MustParse("550e8400-e29b-41d4-a716-446655440001")
	SeedUserMaria = uuid.MustParse("550e8400-e29b-41d4-a716-446655440002")
)

const (
	seedNameJuan  = "Juan Pérez"
	seedNameMaria = "María González"
)

// SeedWorkspaces populates the repository with example workspaces.
// Creation dates are relative to now so listings have a stable order.
func SeedWorkspaces(ctx context.Context, repo repository.WorkspaceRepository, now time.Time) error {
	daysAgo := func(d int) time.Time {
		return now.AddDate(0, 0, -d)
	}

	workspaces := []*domain.Workspace{
		{
			ID:          uuid.New(),
			Name:        "Proyecto Universidad",
			Description: "Espacio para trabajos académicos y colaboración estudiantil",
			Theme:       "Educación",
			IconURL:     "https://via.placeholder.com/150/0000FF/808080",
			OwnerID:     SeedUserJuan,
			Active:      true,
			CreatedAt:   daysAgo(30),
			Members: []domain.Member{
				{UserID: SeedUserJuan, UserName: seedNameJuan, Role: domain.RoleOwner, JoinedAt: daysAgo(30)},
				{UserID: SeedUserMaria, UserName: seedNameMaria, Role: domain.RoleEditor, JoinedAt: daysAgo(25)},
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Ideas Personales",
			Description: "Notas y reflexiones personales sobre diversos temas",
			Theme:       "Personal",
			IconURL:     "https://via.placeholder.com/150/FF0000/FFFFFF",
			OwnerID:     SeedUserJuan,
			Active:      true,
			CreatedAt:   daysAgo(15),
			Members: []domain.Member{
				{UserID: SeedUserJuan, UserName: seedNameJuan, Role: domain.RoleOwner, JoinedAt: daysAgo(15)},
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Desarrollo Web",
			Description: "Recursos, guías y tutoriales de desarrollo web moderno",
			Theme:       "Tecnología",
			IconURL:     "https://via.placeholder.com/150/00FF00/000000",
			OwnerID:     SeedUserMaria,
			Active:      true,
			CreatedAt:   daysAgo(20),
			Members: []domain.Member{
				{UserID: SeedUserMaria, UserName: seedNameMaria, Role: domain.RoleOwner, JoinedAt: daysAgo(20)},
				{UserID: SeedUserJuan, UserName: seedNameJuan, Role: domain.RoleEditor, JoinedAt: daysAgo(18)},
			},
		},
	}

	for _, ws := range workspaces {
		if err := repo.InsertIfNameAbsent(ctx, ws); err != nil {
			return fmt.Errorf("failed to seed workspace %q: %w", ws.Name, err)
		}
	}

	return nil
}
