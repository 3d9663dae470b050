package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ограничения и значения по умолчанию для полей рабочего пространства
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500

	DefaultIconURL  = "https://via.placeholder.com/150"
	DefaultUserName = "Usuario"
)

// Role представляет роль участника в рабочем пространстве
type Role string

// Возможные роли участника
const (
	RoleOwner  Role = "owner"  // Владелец, единственный кто может изменять и удалять пространство
	RoleEditor Role = "editor" // Редактор
)

// Valid возвращает true для известных ролей
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor:
		return true
	default:
		return false
	}
}

// Member представляет участника рабочего пространства
type Member struct {
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Workspace представляет совместное рабочее пространство
type Workspace struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Theme       string     `json:"theme"`
	IconURL     string     `json:"iconUrl"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Active      bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	Members     []Member   `json:"members"`
}

// IsActive возвращает true если пространство не удалено
func (w *Workspace) IsActive() bool {
	return w.Active
}

// FindMember ищет участника по ID пользователя
func (w *Workspace) FindMember(userID uuid.UUID) (*Member, bool) {
	for i := range w.Members {
		if w.Members[i].UserID == userID {
			return &w.Members[i], true
		}
	}
	return nil, false
}

// HasMember проверяет, является ли пользователь участником пространства
func (w *Workspace) HasMember(userID uuid.UUID) bool {
	_, ok := w.FindMember(userID)
	return ok
}

// RoleOf возвращает роль пользователя. Если участник не найден, возвращается RoleEditor.
func (w *Workspace) RoleOf(userID uuid.UUID) Role {
	if m, ok := w.FindMember(userID); ok {
		return m.Role
	}
	return RoleEditor
}

// CheckRoles проверяет, что у каждого участника известная роль
func (w *Workspace) CheckRoles() error {
	for _, m := range w.Members {
		if !m.Role.Valid() {
			return fmt.Errorf("member %s has unknown role %q: %w", m.UserID, m.Role, ErrValidation)
		}
	}
	return nil
}

// IsOwner сравнивает пользователя с неизменяемым полем OwnerID (без учета ролей участников)
func (w *Workspace) IsOwner(userID uuid.UUID) bool {
	return w.OwnerID == userID
}

// SoftDelete помечает пространство как удаленное. Повторный вызов ничего не меняет.
func (w *Workspace) SoftDelete(now time.Time) {
	if !w.Active {
		return
	}
	w.Active = false
	w.DeletedAt = &now
}

// Clone возвращает глубокую копию пространства вместе со списком участников
func (w *Workspace) Clone() *Workspace {
	cp := *w
	if w.UpdatedAt != nil {
		t := *w.UpdatedAt
		cp.UpdatedAt = &t
	}
	if w.DeletedAt != nil {
		t := *w.DeletedAt
		cp.DeletedAt = &t
	}
	cp.Members = make([]Member, len(w.Members))
	copy(cp.Members, w.Members)
	return &cp
}
