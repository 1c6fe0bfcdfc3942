package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tastyhub/ordering-service/internal/api"
	"github.com/tastyhub/ordering-service/internal/models"
	"github.com/tastyhub/ordering-service/internal/service"
)

// AuthHandler handles admin login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an admin and returns a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			api.Unauthorized(w, "Invalid credentials")
			return
		}
		api.InternalServerError(w, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}
