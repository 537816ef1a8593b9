package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyperhustle/hustle-go/internal/api/handler"
	"github.com/hyperhustle/hustle-go/internal/api/middleware"
	"github.com/hyperhustle/hustle-go/internal/services/content"
	"github.com/hyperhustle/hustle-go/internal/services/game"
	"github.com/hyperhustle/hustle-go/internal/services/identity"
	"github.com/hyperhustle/hustle-go/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	GameController  *game.Controller
	ContentService  *content.Service
	HubManager      *sse.HubManager

	// BaseURL is the public origin used in share links
	BaseURL string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	identityHandler := handler.NewIdentityHandler(cfg.IdentityService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.BaseURL)
	contentHandler := handler.NewContentHandler(cfg.ContentService)

	deviceMiddleware := middleware.Device(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Registering a device identity is the only unauthenticated mutation
	api.HandleFunc("/identities", identityHandler.Register).Methods(http.MethodPost)

	identities := api.PathPrefix("/identities").Subrouter()
	identities.Use(deviceMiddleware)
	identities.HandleFunc("/me", identityHandler.GetMe).Methods(http.MethodGet)
	identities.HandleFunc("/me", identityHandler.UpdateUsername).Methods(http.MethodPatch)

	games := api.PathPrefix("/games").Subrouter()
	games.Use(deviceMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Leave).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{id}/click", gameHandler.Click).Methods(http.MethodPost)
	games.HandleFunc("/{id}/resign", gameHandler.Resign).Methods(http.MethodPost)
	games.HandleFunc("/{id}/kick", gameHandler.Kick).Methods(http.MethodPost)
	games.HandleFunc("/{id}/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)
	games.HandleFunc("/{id}/timer", gameHandler.Timer).Methods(http.MethodGet)
	games.HandleFunc("/{id}/share", gameHandler.Share).Methods(http.MethodGet)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	contentRoutes := api.PathPrefix("/content").Subrouter()
	contentRoutes.Use(deviceMiddleware)
	contentRoutes.HandleFunc("/{title}", contentHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
