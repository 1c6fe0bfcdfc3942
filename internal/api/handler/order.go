package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/tastyhub/ordering-service/internal/api"
	"github.com/tastyhub/ordering-service/internal/models"
	"github.com/tastyhub/ordering-service/internal/service"
	"github.com/tastyhub/ordering-service/internal/websockets"
)

// OrderHandler handles order requests
type OrderHandler struct {
	orderService *service.OrderService
	hub          *websockets.Hub
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, hub *websockets.Hub) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		hub:          hub,
	}
}

// List lists all orders, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		api.InternalServerError(w, err)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	api.RespondJSON(w, http.StatusOK, orders)
}

// Create creates a new order
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastEvent(websockets.TypeOrderCreated, order)
	}

	api.RespondJSON(w, http.StatusCreated, order)
}

// UpdateStatus sets the status of an order
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		api.Error(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastEvent(websockets.TypeOrderStatus, struct {
			ID     string             `json:"id"`
			Status models.OrderStatus `json:"status"`
		}{ID: order.ID, Status: order.Status})
	}

	api.RespondJSON(w, http.StatusOK, order)
}

// QRCode returns a pickup QR code for an order as a PNG image. The code
// encodes the order lookup URL so kitchen staff can pull it up by scanning.
func (h *OrderHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	content := fmt.Sprintf("%s://%s/api/orders/%s", scheme, r.Host, order.ID)

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		api.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
