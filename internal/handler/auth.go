package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/middleware"
	"github.com/aidar/hackathon-platform/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// LoginResponse представляет тело ответа на логин
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login обрабатывает POST /auth/login.
// Первый вход с новым email создает пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "valid email is required")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "display_name is required")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.DisplayName)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token, User: user})
}

// Me обрабатывает GET /users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// CompleteOnboarding обрабатывает POST /users/onboarding
func (h *AuthHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	user, err := h.authService.CompleteOnboarding(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}
