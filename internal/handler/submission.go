package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/middleware"
	"github.com/aidar/hackathon-platform/internal/service"
)

// SubmissionHandler обрабатывает эндпоинты заявок
type SubmissionHandler struct {
	submissions *service.SubmissionService
	coordinator *service.TeamCoordinator
}

// NewSubmissionHandler создает новый SubmissionHandler
func NewSubmissionHandler(submissions *service.SubmissionService, coordinator *service.TeamCoordinator) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		coordinator: coordinator,
	}
}

// SaveIdeaDraft обрабатывает PUT /submission/idea/draft.
// Запись проходит через дебаунс автосохранения; ответ подтверждает
// прием правки, а не факт записи.
func (h *SubmissionHandler) SaveIdeaDraft(w http.ResponseWriter, r *http.Request) {
	var payload domain.IdeaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.submissions.QueueIdeaDraft(r.Context(), userID, payload); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
}

// SavePrototypeDraft обрабатывает PUT /submission/prototype/draft
func (h *SubmissionHandler) SavePrototypeDraft(w http.ResponseWriter, r *http.Request) {
	var payload domain.PrototypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.submissions.QueuePrototypeDraft(r.Context(), userID, payload); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
}

// SubmissionResponse представляет ответ с заявкой
type SubmissionResponse struct {
	Submission *domain.Submission `json:"submission"`
}

// SubmitIdea обрабатывает POST /submission/idea/submit
func (h *SubmissionHandler) SubmitIdea(w http.ResponseWriter, r *http.Request) {
	var payload domain.IdeaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	sub, err := h.submissions.SubmitIdea(r.Context(), userID, payload)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SubmissionResponse{Submission: sub})
}

// SubmitPrototype обрабатывает POST /submission/prototype/submit
func (h *SubmissionHandler) SubmitPrototype(w http.ResponseWriter, r *http.Request) {
	var payload domain.PrototypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	sub, err := h.submissions.SubmitPrototype(r.Context(), userID, payload)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SubmissionResponse{Submission: sub})
}

// GetSubmission обрабатывает GET /submission.
// Уже отправленная команда сразу видит состояние submitted.
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	team, err := h.coordinator.GetTeamForUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	sub, err := h.submissions.GetSubmission(r.Context(), team.TeamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SubmissionResponse{Submission: sub})
}
