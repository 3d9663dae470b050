package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondCreated отвечает 201 и указывает адрес созданного ресурса в Location.
// Заголовок выставляется до записи тела, иначе он не попадет в ответ.
func RespondCreated(w http.ResponseWriter, r *http.Request, location string, data any) {
	w.Header().Set("Location", location)
	RespondWithJSON(w, r, http.StatusCreated, data)
}
