package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// ErrorResponse представляет единый формат ответа с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := string(domain.MapErrorToCode(err))

	switch {
	case errors.Is(err, domain.ErrNameTaken):
		RespondWithError(w, r, http.StatusConflict, code, "team name already taken")
	case errors.Is(err, domain.ErrAlreadyMember):
		RespondWithError(w, r, http.StatusConflict, code, "user already belongs to a team")
	case errors.Is(err, domain.ErrTeamFull):
		RespondWithError(w, r, http.StatusConflict, code, "team already has 4 members")
	case errors.Is(err, domain.ErrLeaderMustTransfer):
		RespondWithError(w, r, http.StatusConflict, code, "leader must transfer leadership before leaving")
	case errors.Is(err, domain.ErrSlotTaken):
		RespondWithError(w, r, http.StatusConflict, code, "pitch slot already taken")
	case errors.Is(err, domain.ErrAlreadySubmitted):
		RespondWithError(w, r, http.StatusConflict, code, "submission already submitted")
	case errors.Is(err, domain.ErrTransactionConflict):
		RespondWithError(w, r, http.StatusConflict, code, "concurrent modification, please retry")
	case errors.Is(err, domain.ErrNotLeader):
		RespondWithError(w, r, http.StatusForbidden, code, "operation requires team leader")
	case errors.Is(err, domain.ErrNotEligible):
		RespondWithError(w, r, http.StatusForbidden, code, "team is not shortlisted")
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(w, r, http.StatusForbidden, code, "insufficient role")
	case errors.Is(err, domain.ErrInvalidCode):
		RespondWithError(w, r, http.StatusNotFound, code, "invalid invite code")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTeamNotFound), errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, domain.ErrScoreNotFound):
		RespondWithError(w, r, http.StatusNotFound, code, "resource not found")
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
