package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tastyhub/ordering-service/internal/api"
	"github.com/tastyhub/ordering-service/internal/models"
	"github.com/tastyhub/ordering-service/internal/service"
	"github.com/tastyhub/ordering-service/internal/websockets"
)

// MenuHandler handles catalog requests
type MenuHandler struct {
	menuService *service.MenuService
	hub         *websockets.Hub
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService, hub *websockets.Hub) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		hub:         hub,
	}
}

// broadcastMenuUpdate notifies connected clients that the catalog changed
func (h *MenuHandler) broadcastMenuUpdate(updateType, id string) {
	if h.hub == nil {
		return
	}
	h.hub.BroadcastEvent(websockets.TypeMenuUpdated, struct {
		UpdateType string `json:"update_type"`
		ID         string `json:"id"`
	}{
		UpdateType: updateType,
		ID:         id,
	})
}

// List lists all menu items
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuService.GetItems(r.Context())
	if err != nil {
		api.InternalServerError(w, err)
		return
	}

	if items == nil {
		items = []models.MenuItem{}
	}
	api.RespondJSON(w, http.StatusOK, items)
}

// Create creates a new menu item
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.menuService.CreateItem(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	h.broadcastMenuUpdate("item.create", item.ID)

	api.RespondJSON(w, http.StatusCreated, item)
}

// Update replaces a menu item
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.menuService.UpdateItem(r.Context(), id, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	h.broadcastMenuUpdate("item.update", item.ID)

	api.RespondJSON(w, http.StatusOK, item)
}

// Delete removes a menu item
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.menuService.DeleteItem(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	h.broadcastMenuUpdate("item.delete", id)

	api.RespondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "deleted"})
}

// Toggle flips a menu item's availability
func (h *MenuHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.menuService.ToggleItem(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	h.broadcastMenuUpdate("item.toggle", item.ID)

	api.RespondJSON(w, http.StatusOK, item)
}
