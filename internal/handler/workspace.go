package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aidar/workspace-service/internal/domain"
	"github.com/aidar/workspace-service/internal/service"
)

// WorkspaceHandler обрабатывает эндпоинты рабочих пространств
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
	validate         *validator.Validate
	logger           *slog.Logger
}

// NewWorkspaceHandler создает новый WorkspaceHandler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		validate:         newValidator(),
		logger:           logger,
	}
}

// Routes возвращает роутер с эндпоинтами /workspaces
func (h *WorkspaceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// CreateWorkspaceRequest представляет тело запроса на создание пространства.
// userId разбирается uuid.UUID в любом регистре, некорректное значение
// отклоняется еще на этапе декодирования тела.
type CreateWorkspaceRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
	Theme       string    `json:"theme" validate:"required"`
	IconURL     *string   `json:"iconUrl"`
	UserID      uuid.UUID `json:"userId" validate:"required"`
	UserName    *string   `json:"userName"`
}

// UpdateWorkspaceRequest представляет тело запроса на частичное обновление.
// Отсутствующие и пустые поля не изменяются.
type UpdateWorkspaceRequest struct {
	UserID      uuid.UUID `json:"userId" validate:"required"`
	Name        *string   `json:"name"`
	IconURL     *string   `json:"iconUrl"`
	Description *string   `json:"description"`
	Theme       *string   `json:"theme"`
}

// WorkspaceResponse представляет пространство в ответе на создание
type WorkspaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`
	IconURL     string    `json:"iconUrl"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MemberResponse представляет участника в детальном ответе
type MemberResponse struct {
	UserID   uuid.UUID   `json:"userId"`
	UserName string      `json:"userName"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// WorkspaceDetailResponse представляет полную информацию о пространстве
type WorkspaceDetailResponse struct {
	WorkspaceResponse
	UpdatedAt *time.Time       `json:"updatedAt"`
	Members   []MemberResponse `json:"members"`
}

// UpdateWorkspaceResponse представляет ответ на обновление
type UpdateWorkspaceResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Theme       string     `json:"theme"`
	IconURL     string     `json:"iconUrl"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// DeleteWorkspaceResponse представляет подтверждение удаления
type DeleteWorkspaceResponse struct {
	Message   string    `json:"message"`
	ID        uuid.UUID `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}

// Create обрабатывает POST /workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, validationMessage(err))
		return
	}

	ws, err := h.workspaceService.Create(r.Context(), service.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		Theme:       req.Theme,
		IconURL:     req.IconURL,
		CreatorID:   req.UserID,
		CreatorName: req.UserName,
	})
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondCreated(w, r, "/workspaces/"+ws.ID.String(), toWorkspaceResponse(ws))
}

// List обрабатывает GET /workspaces?userId=...
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	var id uuid.UUID
	if userID != nil {
		id = *userID
	}

	summaries, err := h.workspaceService.ListForUser(r.Context(), id)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, summaries)
}

// Get обрабатывает GET /workspaces/{id}?userId=...
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(r.Context(), id, userID)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	members := make([]MemberResponse, 0, len(ws.Members))
	for _, m := range ws.Members {
		members = append(members, MemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	RespondWithJSON(w, r, http.StatusOK, WorkspaceDetailResponse{
		WorkspaceResponse: toWorkspaceResponse(ws),
		UpdatedAt:         ws.UpdatedAt,
		Members:           members,
	})
}

// Update обрабатывает PATCH /workspaces/{id}
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateWorkspaceRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, validationMessage(err))
		return
	}

	ws, err := h.workspaceService.Update(r.Context(), id, service.UpdateWorkspaceInput{
		UserID:      req.UserID,
		Name:        req.Name,
		IconURL:     req.IconURL,
		Description: req.Description,
		Theme:       req.Theme,
	})
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UpdateWorkspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		Theme:       ws.Theme,
		IconURL:     ws.IconURL,
		UpdatedAt:   ws.UpdatedAt,
	})
}

// Delete обрабатывает DELETE /workspaces/{id}?userId=... (SOFT DELETE)
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	if userID == nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeMissingParameter, "userId query parameter is required")
		return
	}

	res, err := h.workspaceService.Delete(r.Context(), id, *userID)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, DeleteWorkspaceResponse{
		Message:   "workspace deactivated successfully",
		ID:        res.ID,
		DeletedAt: res.DeletedAt,
	})
}

func toWorkspaceResponse(ws *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		Theme:       ws.Theme,
		IconURL:     ws.IconURL,
		OwnerID:     ws.OwnerID,
		CreatedAt:   ws.CreatedAt,
	}
}

// pathID разбирает {id} из пути. Некорректный идентификатор не может указывать
// на существующее пространство, поэтому отвечаем 404.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, domain.CodeNotFound, "workspace not found")
		return uuid.Nil, false
	}
	return id, true
}

// queryUserID разбирает необязательный параметр userId.
// Возвращает nil если параметр не передан.
func queryUserID(w http.ResponseWriter, r *http.Request) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "userId must be a valid UUID")
		return nil, false
	}
	return &id, true
}
