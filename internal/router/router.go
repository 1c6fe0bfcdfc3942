package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/tastyhub/ordering-service/internal/api"
	"github.com/tastyhub/ordering-service/internal/api/handler"
	"github.com/tastyhub/ordering-service/internal/middleware"
	"github.com/tastyhub/ordering-service/internal/service"
	"github.com/tastyhub/ordering-service/internal/websockets"
)

// HealthChecker reports backing store health for the health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Menu     *service.MenuService
	Order    *service.OrderService
	Settings *service.SettingsService
	Auth     *service.AuthService
	Health   HealthChecker
	Hub      *websockets.Hub
}

// New builds the HTTP handler: public read/checkout routes, admin-only
// mutation routes behind JWT auth, permissive CORS for the browser frontend.
func New(s Services) http.Handler {
	menuHandler := handler.NewMenuHandler(s.Menu, s.Hub)
	orderHandler := handler.NewOrderHandler(s.Order, s.Hub)
	settingsHandler := handler.NewSettingsHandler(s.Settings, s.Hub)
	authHandler := handler.NewAuthHandler(s.Auth)

	r := mux.NewRouter()

	apiRouter := r.PathPrefix("/api").Subrouter()

	// Public routes: the customer flow needs no account.
	apiRouter.HandleFunc("/menu", menuHandler.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/orders/{id}/qrcode", orderHandler.QRCode).Methods(http.MethodGet)
	apiRouter.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	apiRouter.HandleFunc("/health", healthHandler(s.Health)).Methods(http.MethodGet)

	// Admin routes: every catalog, status and settings mutation.
	adminRouter := r.PathPrefix("/api").Subrouter()
	adminRouter.Use(middleware.Auth(s.Auth))
	adminRouter.HandleFunc("/menu", menuHandler.Create).Methods(http.MethodPost)
	adminRouter.HandleFunc("/menu/{id}", menuHandler.Update).Methods(http.MethodPut)
	adminRouter.HandleFunc("/menu/{id}", menuHandler.Delete).Methods(http.MethodDelete)
	adminRouter.HandleFunc("/menu/{id}/toggle", menuHandler.Toggle).Methods(http.MethodPut)
	adminRouter.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods(http.MethodPut)
	adminRouter.HandleFunc("/settings", settingsHandler.Update).Methods(http.MethodPut)

	r.HandleFunc("/ws", wsHandler(s.Hub))

	return cors.AllowAll().Handler(middleware.Logger(r))
}

func healthHandler(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if health != nil {
			if err := health.HealthCheck(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		api.RespondJSON(w, http.StatusOK, struct {
			Status string `json:"status"`
		}{Status: "ok"})
	}
}

func wsHandler(hub *websockets.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websockets.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// The upgrader has already written the error response.
			return
		}
		websockets.ServeWs(hub, conn)
	}
}
