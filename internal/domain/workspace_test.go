package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace() *Workspace {
	owner := uuid.New()
	editor := uuid.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Workspace{
		ID:        uuid.New(),
		Name:      "Team A",
		Theme:     "Work",
		IconURL:   DefaultIconURL,
		OwnerID:   owner,
		Active:    true,
		CreatedAt: now,
		Members: []Member{
			{UserID: owner, UserName: "Owner", Role: RoleOwner, JoinedAt: now},
			{UserID: editor, UserName: "Editor", Role: RoleEditor, JoinedAt: now},
		},
	}
}

func TestWorkspace_Roles(t *testing.T) {
	ws := newTestWorkspace()
	owner := ws.Members[0].UserID
	editor := ws.Members[1].UserID
	stranger := uuid.New()

	assert.Equal(t, RoleOwner, ws.RoleOf(owner))
	assert.Equal(t, RoleEditor, ws.RoleOf(editor))
	// Для неучастника используется роль по умолчанию
	assert.Equal(t, RoleEditor, ws.RoleOf(stranger))

	assert.True(t, ws.HasMember(editor))
	assert.False(t, ws.HasMember(stranger))

	assert.True(t, ws.IsOwner(owner))
	assert.False(t, ws.IsOwner(editor))
}

func TestWorkspace_SoftDelete(t *testing.T) {
	ws := newTestWorkspace()
	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	ws.SoftDelete(first)
	require.False(t, ws.IsActive())
	require.NotNil(t, ws.DeletedAt)
	assert.Equal(t, first, *ws.DeletedAt)

	// Повторное удаление не переписывает время удаления
	ws.SoftDelete(first.Add(time.Hour))
	assert.Equal(t, first, *ws.DeletedAt)
}

func TestWorkspace_CloneIsDeep(t *testing.T) {
	ws := newTestWorkspace()
	updated := time.Now().UTC()
	ws.UpdatedAt = &updated

	cp := ws.Clone()
	cp.Members[0].UserName = "changed"
	cp.Members = append(cp.Members, Member{UserID: uuid.New(), Role: RoleEditor})
	*cp.UpdatedAt = updated.Add(time.Hour)

	assert.Equal(t, "Owner", ws.Members[0].UserName)
	assert.Len(t, ws.Members, 2)
	assert.Equal(t, updated, *ws.UpdatedAt)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleEditor.Valid())
	assert.False(t, Role("Propietario").Valid())
}

func TestWorkspace_CheckRoles(t *testing.T) {
	owner := uuid.New()
	ws := &Workspace{
		OwnerID: owner,
		Members: []Member{{UserID: owner, Role: RoleOwner}, {UserID: uuid.New(), Role: RoleEditor}},
	}
	assert.NoError(t, ws.CheckRoles())

	ws.Members = append(ws.Members, Member{UserID: uuid.New(), Role: "Propietario"})
	assert.ErrorIs(t, ws.CheckRoles(), ErrValidation)
}

func TestMapErrorToCode(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{ErrMissingParameter, CodeMissingParameter},
		{fmt.Errorf("name: %w", ErrValidation), CodeValidation},
		{ErrNotFound, CodeNotFound},
		{ErrForbidden, CodeForbidden},
		{fmt.Errorf("rename: %w", ErrDuplicateName), CodeDuplicateName},
		{errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToCode(tt.err), tt.err.Error())
	}
}
