package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/workspace-service/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы.
// Непредвиденные ошибки пишутся в переданный logger.
func HandleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.MapErrorToCode(err)

	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		RespondWithError(w, r, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, domain.ErrValidation):
		RespondWithError(w, r, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		RespondWithError(w, r, http.StatusBadRequest, code, "a workspace with this name already exists")
	case errors.Is(err, domain.ErrNotFound):
		RespondWithError(w, r, http.StatusNotFound, code, "workspace not found")
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(w, r, http.StatusForbidden, code, forbiddenMessage(r))
	default:
		logger.ErrorContext(r.Context(), "Unhandled error", "error", err, "method", r.Method, "path", r.URL.Path)
		RespondWithError(w, r, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	}
}

// forbiddenMessage подбирает текст ошибки доступа под операцию
func forbiddenMessage(r *http.Request) string {
	switch r.Method {
	case http.MethodPatch:
		return "only the owner can edit this workspace"
	case http.MethodDelete:
		return "only the owner can delete this workspace"
	default:
		return "you do not have access to this workspace"
	}
}
