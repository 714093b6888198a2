package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/middleware"
	"github.com/aidar/hackathon-platform/internal/service"
)

// SlotHandler обрабатывает эндпоинты питч-слотов
type SlotHandler struct {
	allocator *service.SlotAllocator
}

// NewSlotHandler создает новый SlotHandler
func NewSlotHandler(allocator *service.SlotAllocator) *SlotHandler {
	return &SlotHandler{
		allocator: allocator,
	}
}

// ListSlots обрабатывает GET /slots
func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	views, err := h.allocator.ListSlots(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]any{"slots": views})
}

// SlotResponse представляет ответ с забронированным слотом
type SlotResponse struct {
	Slot *domain.PitchSlot `json:"slot"`
}

// BookSlot обрабатывает POST /slots/{slotID}/book
func (h *SlotHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "slotID")
	userID := middleware.GetUserIDFromContext(r.Context())

	slot, err := h.allocator.BookSlot(r.Context(), userID, slotID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SlotResponse{Slot: slot})
}

// ReleaseSlot обрабатывает POST /slots/release
func (h *SlotHandler) ReleaseSlot(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	if err := h.allocator.ReleaseSlot(r.Context(), userID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
