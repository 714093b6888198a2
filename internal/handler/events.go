package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/hackathon-platform/internal/events"
	"github.com/aidar/hackathon-platform/internal/service"
)

// EventsHandler отдает живые read-модели через Server-Sent Events:
// подписка вместо поллинга. При подключении клиент получает снапшот
// текущего состояния, затем только свежие коммиты.
type EventsHandler struct {
	hub         *events.Hub
	coordinator *service.TeamCoordinator
	allocator   *service.SlotAllocator
}

// NewEventsHandler создает новый EventsHandler
func NewEventsHandler(hub *events.Hub, coordinator *service.TeamCoordinator, allocator *service.SlotAllocator) *EventsHandler {
	return &EventsHandler{
		hub:         hub,
		coordinator: coordinator,
		allocator:   allocator,
	}
}

// StreamTeam обрабатывает GET /events/team/{teamID}
func (h *EventsHandler) StreamTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	snapshot, err := h.coordinator.GetTeam(r.Context(), teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	h.stream(w, r, events.TeamKey(teamID), snapshot)
}

// StreamSlots обрабатывает GET /events/slots
func (h *EventsHandler) StreamSlots(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.allocator.ListSlots(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	h.stream(w, r, events.SlotsKey, snapshot)
}

// stream подписывается на ключ и пишет состояния в SSE-формате
// до отключения клиента
func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request, key string, snapshot any) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		RespondWithError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming is not supported")
		return
	}

	sub := h.hub.Subscribe(key)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, snapshot); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case state := <-sub.C():
			if err := writeEvent(w, state); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
