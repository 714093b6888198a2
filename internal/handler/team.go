package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/middleware"
	"github.com/aidar/hackathon-platform/internal/service"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	coordinator *service.TeamCoordinator
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(coordinator *service.TeamCoordinator) *TeamHandler {
	return &TeamHandler{
		coordinator: coordinator,
	}
}

// CreateTeamRequest представляет тело запроса на создание команды
type CreateTeamRequest struct {
	Name     string   `json:"name"`
	Theme    string   `json:"theme"`
	Tags     []string `json:"tags"`
	Position string   `json:"position"`
}

// TeamResponse представляет ответ с командой
type TeamResponse struct {
	Team *domain.Team `json:"team"`
}

// CreateTeam обрабатывает POST /teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "name is required")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	team, err := h.coordinator.CreateTeam(r.Context(), userID, strings.TrimSpace(req.Name), req.Theme, req.Tags, req.Position)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, TeamResponse{Team: team})
}

// JoinTeamRequest представляет тело запроса на вступление в команду
type JoinTeamRequest struct {
	InviteCode string `json:"invite_code"`
	Position   string `json:"position"`
}

// JoinTeam обрабатывает POST /teams/join
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	var req JoinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if strings.TrimSpace(req.InviteCode) == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invite_code is required")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	team, err := h.coordinator.JoinTeam(r.Context(), userID, strings.TrimSpace(req.InviteCode), req.Position)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}

// LeaveTeam обрабатывает POST /teams/leave
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	if err := h.coordinator.LeaveTeam(r.Context(), userID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// TransferLeadershipRequest представляет тело запроса на передачу лидерства
type TransferLeadershipRequest struct {
	NewLeaderID string `json:"new_leader_id"`
}

// TransferLeadership обрабатывает POST /teams/transfer-leader
func (h *TeamHandler) TransferLeadership(w http.ResponseWriter, r *http.Request) {
	var req TransferLeadershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.NewLeaderID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "new_leader_id is required")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	team, err := h.coordinator.TransferLeadership(r.Context(), userID, req.NewLeaderID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}

// SearchTeams обрабатывает GET /teams/search?prefix=...&limit=...
func (h *TeamHandler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "limit must be a number")
			return
		}
		limit = parsed
	}

	teams, err := h.coordinator.SearchTeams(r.Context(), prefix, limit)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]any{"teams": teams})
}

// GetMyTeam обрабатывает GET /teams/me
func (h *TeamHandler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	team, err := h.coordinator.GetTeamForUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}

// GetTeam обрабатывает GET /teams/{teamID}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	team, err := h.coordinator.GetTeam(r.Context(), teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}
