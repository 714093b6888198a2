package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/middleware"
	"github.com/aidar/hackathon-platform/internal/service"
)

// JudgingHandler обрабатывает эндпоинты жюри
type JudgingHandler struct {
	judging *service.JudgingService
	results *service.ResultsService
}

// NewJudgingHandler создает новый JudgingHandler
func NewJudgingHandler(judging *service.JudgingService, results *service.ResultsService) *JudgingHandler {
	return &JudgingHandler{
		judging: judging,
		results: results,
	}
}

// SubmitScoreRequest представляет тело запроса на выставление оценки
type SubmitScoreRequest struct {
	TeamID   string         `json:"team_id"`
	Criteria map[string]int `json:"criteria"`
	Feedback string         `json:"feedback"`
}

// ScoreResponse представляет ответ с оценкой
type ScoreResponse struct {
	Score *domain.Score `json:"score"`
}

// SubmitScore обрабатывает POST /judging/scores.
// Итог пересчитывается на сервере; повторная отправка перезаписывает.
func (h *JudgingHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.TeamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "team_id is required")
		return
	}
	if len(req.Criteria) == 0 {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "criteria is required")
		return
	}

	judgeID := middleware.GetUserIDFromContext(r.Context())
	score, err := h.judging.SubmitScore(r.Context(), judgeID, req.TeamID, req.Criteria, req.Feedback)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ScoreResponse{Score: score})
}

// GetExistingScore обрабатывает GET /judging/scores/{teamID}.
// Возвращает только собственную оценку вызывающего судьи.
func (h *JudgingHandler) GetExistingScore(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	judgeID := middleware.GetUserIDFromContext(r.Context())

	score, err := h.judging.GetExistingScore(r.Context(), judgeID, teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ScoreResponse{Score: score})
}

// GetResults обрабатывает GET /judging/results
func (h *JudgingHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.GetResults(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]any{"results": results})
}

// GetTeamResult обрабатывает GET /judging/results/{teamID}
func (h *JudgingHandler) GetTeamResult(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	result, err := h.results.GetTeamResult(r.Context(), teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]any{"result": result})
}
