package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/service"
)

// AdminHandler обрабатывает административные эндпоинты
type AdminHandler struct {
	allocator   *service.SlotAllocator
	submissions *service.SubmissionService
}

// NewAdminHandler создает новый AdminHandler
func NewAdminHandler(allocator *service.SlotAllocator, submissions *service.SubmissionService) *AdminHandler {
	return &AdminHandler{
		allocator:   allocator,
		submissions: submissions,
	}
}

// SeedSlotsRequest представляет тело запроса на создание инвентаря слотов
type SeedSlotsRequest struct {
	Slots []SeedSlot `json:"slots"`
}

// SeedSlot представляет один слот в запросе
type SeedSlot struct {
	SlotID   string    `json:"slot_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// SeedSlots обрабатывает POST /admin/slots
func (h *AdminHandler) SeedSlots(w http.ResponseWriter, r *http.Request) {
	var req SeedSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if len(req.Slots) == 0 {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "slots is required")
		return
	}

	slots := make([]domain.PitchSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		if s.SlotID == "" || !s.EndsAt.After(s.StartsAt) {
			RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "each slot needs slot_id and a valid time window")
			return
		}
		slots = append(slots, domain.PitchSlot{
			SlotID:   s.SlotID,
			StartsAt: s.StartsAt,
			EndsAt:   s.EndsAt,
			Status:   domain.SlotOpen,
		})
	}

	if err := h.allocator.SeedSlots(r.Context(), slots); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, map[string]int{"seeded": len(slots)})
}

// ShortlistRequest представляет тело запроса на изменение шортлиста
type ShortlistRequest struct {
	Shortlisted bool `json:"shortlisted"`
}

// SetShortlisted обрабатывает POST /admin/teams/{teamID}/shortlist
func (h *AdminHandler) SetShortlisted(w http.ResponseWriter, r *http.Request) {
	var req ShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	teamID := chi.URLParam(r, "teamID")
	if err := h.submissions.SetShortlisted(r.Context(), teamID, req.Shortlisted); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
