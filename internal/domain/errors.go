package domain

import "errors"

// Доменные ошибки рабочих пространств
var (
	// ErrMissingParameter возвращается когда не передан обязательный параметр
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrValidation возвращается когда значения полей нарушают ограничения модели
	ErrValidation = errors.New("validation failed")

	// ErrNotFound возвращается когда пространство не существует или удалено
	ErrNotFound = errors.New("workspace not found")

	// ErrForbidden возвращается когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateName возвращается когда активное пространство с таким именем уже есть
	ErrDuplicateName = errors.New("workspace with this name already exists")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeDuplicateName    ErrorCode = "DUPLICATE_NAME"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrMissingParameter):
		return CodeMissingParameter
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrDuplicateName):
		return CodeDuplicateName
	default:
		return CodeInternal
	}
}
