package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON пишет data как JSON с указанным статусом ответа
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}
