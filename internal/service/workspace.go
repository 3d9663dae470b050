package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/aidar/workspace-service/internal/domain"
	"github.com/aidar/workspace-service/internal/repository"
)

// CreateWorkspaceInput holds the data needed to create a workspace
type CreateWorkspaceInput struct {
	Name        string
	Description string
	Theme       string
	IconURL     *string
	CreatorID   uuid.UUID
	CreatorName *string
}

// UpdateWorkspaceInput is a merge-patch: nil or blank fields are left untouched
type UpdateWorkspaceInput struct {
	UserID      uuid.UUID
	Name        *string
	IconURL     *string
	Description *string
	Theme       *string
}

// WorkspaceSummary is a workspace as seen in a user's listing
type WorkspaceSummary struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	IconURL   string      `json:"iconUrl"`
	Role      domain.Role `json:"role"`
	Theme     string      `json:"theme"`
	CreatedAt time.Time   `json:"createdAt"`
}

// DeleteResult confirms a soft deletion
type DeleteResult struct {
	ID        uuid.UUID `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}

// WorkspaceService handles business logic and access rules for workspaces
type WorkspaceService struct {
	repo   repository.WorkspaceRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(repo repository.WorkspaceRepository, logger *slog.Logger) *WorkspaceService {
	return &WorkspaceService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create creates a new workspace with the creator as its only member (owner)
func (s *WorkspaceService) Create(ctx context.Context, in CreateWorkspaceInput) (*domain.Workspace, error) {
	if in.CreatorID == uuid.Nil {
		return nil, fmt.Errorf("userId: %w", domain.ErrMissingParameter)
	}
	if isBlank(in.Name) {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if isBlank(in.Theme) {
		return nil, fmt.Errorf("theme is required: %w", domain.ErrValidation)
	}
	if err := validateLengths(in.Name, in.Description); err != nil {
		return nil, err
	}

	now := s.now()
	ws := &domain.Workspace{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Theme:       in.Theme,
		IconURL:     valueOr(in.IconURL, domain.DefaultIconURL),
		OwnerID:     in.CreatorID,
		Active:      true,
		CreatedAt:   now,
		Members: []domain.Member{
			{
				UserID:   in.CreatorID,
				UserName: valueOr(in.CreatorName, domain.DefaultUserName),
				Role:     domain.RoleOwner,
				JoinedAt: now,
			},
		},
	}

	// Check-and-insert is atomic in the repository
	if err := s.repo.InsertIfNameAbsent(ctx, ws); err != nil {
		return nil, err
	}

	s.logger.Info("workspace created", "workspace_id", ws.ID, "owner_id", ws.OwnerID)
	return ws, nil
}

// ListForUser returns the active workspaces the user is a member of, newest first
func (s *WorkspaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]WorkspaceSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("userId: %w", domain.ErrMissingParameter)
	}

	workspaces, err := s.repo.FindByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]WorkspaceSummary, 0, len(workspaces))
	for _, ws := range workspaces {
		summaries = append(summaries, WorkspaceSummary{
			ID:        ws.ID,
			Name:      ws.Name,
			IconURL:   ws.IconURL,
			Role:      ws.RoleOf(userID),
			Theme:     ws.Theme,
			CreatedAt: ws.CreatedAt,
		})
	}

	return summaries, nil
}

// Get returns a workspace with its members.
// If userID is given, the user must be a member of the workspace.
func (s *WorkspaceService) Get(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*domain.Workspace, error) {
	ws, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if userID != nil && !ws.HasMember(*userID) {
		return nil, domain.ErrForbidden
	}

	return ws, nil
}

// Update applies a partial update. Only a member with the owner role may update.
func (s *WorkspaceService) Update(ctx context.Context, id uuid.UUID, in UpdateWorkspaceInput) (*domain.Workspace, error) {
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("userId: %w", domain.ErrMissingParameter)
	}

	return s.repo.Update(ctx, id, func(ws *domain.Workspace) error {
		member, ok := ws.FindMember(in.UserID)
		if !ok || member.Role != domain.RoleOwner {
			return domain.ErrForbidden
		}

		name, hasName := provided(in.Name)
		description, hasDescription := provided(in.Description)
		if err := validateLengths(name, description); err != nil {
			return err
		}

		changed := false
		if hasName && name != ws.Name {
			// Uniqueness against other active workspaces is checked by the repository on commit
			ws.Name = name
			changed = true
		}
		if v, ok := provided(in.IconURL); ok && v != ws.IconURL {
			ws.IconURL = v
			changed = true
		}
		if hasDescription && description != ws.Description {
			ws.Description = description
			changed = true
		}
		if v, ok := provided(in.Theme); ok && v != ws.Theme {
			ws.Theme = v
			changed = true
		}

		if changed {
			now := s.now()
			ws.UpdatedAt = &now
		}
		return nil
	})
}

// Delete soft-deletes a workspace. Only the user recorded as owner may delete it.
func (s *WorkspaceService) Delete(ctx context.Context, id, userID uuid.UUID) (*DeleteResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("userId: %w", domain.ErrMissingParameter)
	}

	deleted, err := s.repo.Update(ctx, id, func(ws *domain.Workspace) error {
		if !ws.IsOwner(userID) {
			return domain.ErrForbidden
		}
		ws.SoftDelete(s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workspace deleted", "workspace_id", deleted.ID, "user_id", userID)
	return &DeleteResult{
		ID:        deleted.ID,
		DeletedAt: *deleted.DeletedAt,
	}, nil
}

func validateLengths(name, description string) error {
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("name must not exceed %d characters: %w", domain.MaxNameLength, domain.ErrValidation)
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return fmt.Errorf("description must not exceed %d characters: %w", domain.MaxDescriptionLength, domain.ErrValidation)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// provided reports whether an optional field carries a non-blank value
func provided(v *string) (string, bool) {
	if v == nil || isBlank(*v) {
		return "", false
	}
	return *v, true
}

func valueOr(v *string, fallback string) string {
	if s, ok := provided(v); ok {
		return s
	}
	return fallback
}
