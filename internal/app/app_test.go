package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тестовые структуры данных соответствующие API
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Theme       string `json:"theme"`
	IconURL     string `json:"iconUrl,omitempty"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName,omitempty"`
}

type WorkspaceResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Theme       string     `json:"theme"`
	IconURL     string     `json:"iconUrl"`
	OwnerID     string     `json:"ownerId"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	Members     []struct {
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
		Role     string `json:"role"`
	} `json:"members"`
}

type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

const (
	userU1    = "11111111-1111-4111-8111-111111111111"
	userU2    = "22222222-2222-4222-8222-222222222222"
	seedJuan  = "550e8400-e29b-41d4-a716-446655440001"
	seedMaria = "550e8400-e29b-41d4-a716-446655440002"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TestE2E_WorkspaceLifecycle проходит полный сценарий жизни рабочего пространства
func TestE2E_WorkspaceLifecycle(t *testing.T) {
	env := SetupTestEnvironment(t, false)

	var created WorkspaceResponse
	t.Run("Create Workspace", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/workspaces", jsonBody(t, CreateWorkspaceRequest{
			Name:   "Team A",
			Theme:  "Work",
			UserID: userU1,
		}))
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created = decode[WorkspaceResponse](t, resp)

		assert.Equal(t, userU1, created.OwnerID)
		assert.Equal(t, "/workspaces/"+created.ID, resp.Header.Get("Location"))
	})

	t.Run("Owner Is The Only Member", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/workspaces/"+created.ID, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		detail := decode[WorkspaceResponse](t, resp)
		require.Len(t, detail.Members, 1)
		assert.Equal(t, userU1, detail.Members[0].UserID)
		assert.Equal(t, "owner", detail.Members[0].Role)
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/workspaces", jsonBody(t, CreateWorkspaceRequest{
			Name:   "Team A",
			Theme:  "Work",
			UserID: userU1,
		}))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "DUPLICATE_NAME", decode[ErrorResponse](t, resp).Error.Code)
	})

	t.Run("Owner Updates Theme", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPatch, "/workspaces/"+created.ID, jsonBody(t, map[string]string{
			"userId": userU1,
			"theme":  "Study",
		}))
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := decode[WorkspaceResponse](t, resp)
		assert.Equal(t, "Team A", updated.Name)
		assert.Equal(t, "Study", updated.Theme)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("Non Owner Cannot Delete", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodDelete, "/workspaces/"+created.ID+"?userId="+userU2, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner Deletes", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodDelete, "/workspaces/"+created.ID+"?userId="+userU1, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			ID        string    `json:"id"`
			DeletedAt time.Time `json:"deletedAt"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, created.ID, body.ID)
		assert.False(t, body.DeletedAt.IsZero())
	})

	t.Run("Deleted Workspace Is Not Found", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/workspaces/"+created.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Deleted Workspace Is Not Listed", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/workspaces?userId="+userU1, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, decode[[]WorkspaceResponse](t, resp))
	})
}

// TestE2E_SeedData проверяет, что начальные данные доступны через API
func TestE2E_SeedData(t *testing.T) {
	env := SetupTestEnvironment(t, true)

	t.Run("Juan Sees All Seeded Workspaces", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/workspaces?userId="+seedJuan, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decode[[]WorkspaceResponse](t, resp)
		require.Len(t, list, 3)

		// Сортировка по дате создания, новые первыми
		for i := 1; i < len(list); i++ {
			assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
		}

		roles := make(map[string]string)
		for _, ws := range list {
			roles[ws.Name] = ws.Role
		}
		assert.Equal(t, "owner", roles["Proyecto Universidad"])
		assert.Equal(t, "editor", roles["Desarrollo Web"])
	})

	t.Run("Editor Cannot Update", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/workspaces?userId="+seedMaria, nil)
		list := decode[[]WorkspaceResponse](t, resp)
		resp.Body.Close()

		var target string
		for _, ws := range list {
			if ws.Role == "editor" {
				target = ws.ID
			}
		}
		require.NotEmpty(t, target)

		resp = env.MakeRequest(t, http.MethodPatch, "/workspaces/"+target, jsonBody(t, map[string]string{
			"userId": seedMaria,
			"name":   "Hijacked",
		}))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Stats", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/stats", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var stats struct {
			ActiveWorkspaces int `json:"activeWorkspaces"`
			TotalMembers     int `json:"totalMembers"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, 3, stats.ActiveWorkspaces)
		assert.Equal(t, 5, stats.TotalMembers)
	})
}

// TestE2E_ConcurrentCreateSameName проверяет, что при гонке создается ровно одно пространство
func TestE2E_ConcurrentCreateSameName(t *testing.T) {
	env := SetupTestEnvironment(t, false)

	const requests = 20
	statuses := make([]int, requests)

	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(CreateWorkspaceRequest{
				Name:   "Race",
				Theme:  "Work",
				UserID: fmt.Sprintf("%08d-0000-4000-8000-000000000000", i+1),
			})
			req, err := http.NewRequest(http.MethodPost, env.BaseURL+"/workspaces", bytes.NewReader(body))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := env.client.Do(req)
			if err != nil {
				return
			}
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, status)
		}
	}
	assert.Equal(t, 1, created)
}

// TestE2E_ServiceEndpoints проверяет служебные эндпоинты и CORS
func TestE2E_ServiceEndpoints(t *testing.T) {
	env := SetupTestEnvironment(t, false)

	t.Run("Health", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/health", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var health struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.Equal(t, "healthy", health.Status)
	})

	t.Run("Info", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var info struct {
			Service   string   `json:"service"`
			Endpoints []string `json:"endpoints"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		assert.NotEmpty(t, info.Service)
		assert.Contains(t, info.Endpoints, "PATCH /workspaces/{id}")
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, env.BaseURL+"/workspaces", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := env.client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
