package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aidar/workspace-service/internal/domain"
	"github.com/aidar/workspace-service/internal/repository"
)

// WorkspaceRepository реализует repository.WorkspaceRepository в памяти процесса.
// Один RWMutex охраняет всю коллекцию, наружу отдаются только копии.
type WorkspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[uuid.UUID]*domain.Workspace
	order      []uuid.UUID
}

// NewWorkspaceRepository создает пустое хранилище
func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{
		workspaces: make(map[uuid.UUID]*domain.Workspace),
	}
}

// Insert добавляет пространство без проверки уникальности имени
func (r *WorkspaceRepository) Insert(_ context.Context, ws *domain.Workspace) error {
	if err := ws.CheckRoles(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(ws)
	return nil
}

// InsertIfNameAbsent добавляет пространство, если среди активных нет такого же имени.
// Участник с неизвестной ролью отклоняется с domain.ErrValidation.
func (r *WorkspaceRepository) InsertIfNameAbsent(_ context.Context, ws *domain.Workspace) error {
	if err := ws.CheckRoles(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(ws.Name, uuid.Nil) {
		return domain.ErrDuplicateName
	}

	r.put(ws)
	return nil
}

// FindByID получает активное пространство по ID
func (r *WorkspaceRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, ok := r.workspaces[id]
	if !ok || !ws.IsActive() {
		return nil, domain.ErrNotFound
	}
	return ws.Clone(), nil
}

// FindByMember возвращает активные пространства, где пользователь является участником
func (r *WorkspaceRepository) FindByMember(_ context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(ws *domain.Workspace) bool {
		return ws.HasMember(userID)
	}), nil
}

// ExistsByName проверяет наличие активного пространства с именем без учета регистра
func (r *WorkspaceRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nameTaken(name, uuid.Nil), nil
}

// ListActive возвращает все активные пространства
func (r *WorkspaceRepository) ListActive(_ context.Context) ([]*domain.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(nil), nil
}

// CountActive возвращает количество активных пространств
func (r *WorkspaceRepository) CountActive(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, ws := range r.workspaces {
		if ws.IsActive() {
			count++
		}
	}
	return count, nil
}

// Update применяет mutate к копии активного пространства и сохраняет ее целиком.
// Если mutate вернул ошибку, оставил участника с неизвестной ролью или новое имя
// занято другим активным пространством, хранилище остается без изменений.
func (r *WorkspaceRepository) Update(_ context.Context, id uuid.UUID, mutate repository.MutateFunc) (*domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.workspaces[id]
	if !ok || !current.IsActive() {
		return nil, domain.ErrNotFound
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}

	// ID, владелец и дата создания неизменяемы
	next.ID = current.ID
	next.OwnerID = current.OwnerID
	next.CreatedAt = current.CreatedAt

	if err := next.CheckRoles(); err != nil {
		return nil, err
	}
	if next.IsActive() && next.Name != current.Name && r.nameTaken(next.Name, id) {
		return nil, domain.ErrDuplicateName
	}

	r.workspaces[id] = next
	return next.Clone(), nil
}

// put сохраняет копию пространства. Вызывается под блокировкой на запись.
func (r *WorkspaceRepository) put(ws *domain.Workspace) {
	if _, exists := r.workspaces[ws.ID]; !exists {
		r.order = append(r.order, ws.ID)
	}
	r.workspaces[ws.ID] = ws.Clone()
}

// nameTaken проверяет имя среди активных пространств, кроме exclude
func (r *WorkspaceRepository) nameTaken(name string, exclude uuid.UUID) bool {
	for id, ws := range r.workspaces {
		if id == exclude || !ws.IsActive() {
			continue
		}
		if strings.EqualFold(ws.Name, name) {
			return true
		}
	}
	return false
}

// collect возвращает копии активных пространств, подходящих под фильтр,
// отсортированные по дате создания (новые первыми)
func (r *WorkspaceRepository) collect(match func(ws *domain.Workspace) bool) []*domain.Workspace {
	out := make([]*domain.Workspace, 0)
	for _, id := range r.order {
		ws := r.workspaces[id]
		if !ws.IsActive() {
			continue
		}
		if match != nil && !match(ws) {
			continue
		}
		out = append(out, ws.Clone())
	}

	// Стабильная сортировка сохраняет порядок вставки при равных датах
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Проверка реализации интерфейса на этапе компиляции
var _ repository.WorkspaceRepository = (*WorkspaceRepository)(nil)
