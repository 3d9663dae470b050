package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/aidar/workspace-service/internal/domain"
)

// MutateFunc изменяет копию пространства внутри атомарной операции Update.
// Возврат ошибки отменяет изменения.
type MutateFunc func(ws *domain.Workspace) error

// WorkspaceRepository определяет методы для работы с рабочими пространствами.
// Все методы чтения видят только активные пространства.
type WorkspaceRepository interface {
	// Insert добавляет пространство без проверки уникальности имени
	Insert(ctx context.Context, ws *domain.Workspace) error

	// InsertIfNameAbsent атомарно проверяет уникальность имени и добавляет пространство
	InsertIfNameAbsent(ctx context.Context, ws *domain.Workspace) error

	// FindByID получает активное пространство по ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)

	// FindByMember возвращает активные пространства пользователя, новые первыми
	FindByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error)

	// ExistsByName проверяет наличие активного пространства с именем (без учета регистра)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ListActive возвращает все активные пространства, новые первыми
	ListActive(ctx context.Context) ([]*domain.Workspace, error)

	// CountActive возвращает количество активных пространств
	CountActive(ctx context.Context) (int, error)

	// Update атомарно применяет mutate к активному пространству и сохраняет результат
	Update(ctx context.Context, id uuid.UUID, mutate MutateFunc) (*domain.Workspace, error)
}
