package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tastyhub/ordering-service/internal/api"
	"github.com/tastyhub/ordering-service/internal/models"
	"github.com/tastyhub/ordering-service/internal/service"
	"github.com/tastyhub/ordering-service/internal/websockets"
)

// SettingsHandler handles store settings requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	hub             *websockets.Hub
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, hub *websockets.Hub) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		hub:             hub,
	}
}

// Get retrieves the store settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		api.InternalServerError(w, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, settings)
}

// Update saves the store settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.StoreSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastEvent(websockets.TypeSettingsUpdated, settings)
	}

	api.RespondJSON(w, http.StatusOK, settings)
}
