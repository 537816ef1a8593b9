package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/hyperhustle/hustle-go/internal/api/middleware"
	"github.com/hyperhustle/hustle-go/internal/api/request"
	"github.com/hyperhustle/hustle-go/internal/api/response"
	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/services/game"
	"github.com/hyperhustle/hustle-go/internal/services/screen"
	"github.com/hyperhustle/hustle-go/internal/sse"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	controller *game.Controller
	hubManager *sse.HubManager
	baseURL    string
}

// NewGameHandler creates a new game handler. baseURL is the public origin
// used to build share links.
func NewGameHandler(controller *game.Controller, hubManager *sse.HubManager, baseURL string) *GameHandler {
	return &GameHandler{
		controller: controller,
		hubManager: hubManager,
		baseURL:    baseURL,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.controller.Create(r.Context(), ident, req.StartPage, req.EndPage, req.TimeLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g, screen.GameLobby))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.controller.Get(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, screen.GameLobby))
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	g, err := h.controller.Join(r.Context(), gameID(r), ident)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, screen.GameLobby))
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	g, err := h.controller.Start(r.Context(), gameID(r), ident.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, screen.GamePlay))
}

// Click handles POST /api/v1/games/{id}/click. It records the navigation and
// immediately runs goal detection on the reported page.
func (h *GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	id := gameID(r)

	var req request.ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.URL == "" {
		WriteError(w, NewInvalidRequestError("url is required"))
		return
	}

	if _, err := h.controller.HandleLinkClick(r.Context(), id, ident.ID, req.URL); err != nil {
		WriteError(w, err)
		return
	}

	finished, g, err := h.controller.CheckCompletion(r.Context(), id, ident.ID, req.URL)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClickResult{
		Game:     response.GameFromModel(g, screen.GamePlay),
		Finished: finished,
	})
}

// Resign handles POST /api/v1/games/{id}/resign
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	g, err := h.controller.Resign(r.Context(), gameID(r), ident.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, screen.MainMenu))
}

// Kick handles POST /api/v1/games/{id}/kick
func (h *GameHandler) Kick(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	var req request.KickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.controller.Kick(r.Context(), gameID(r), ident.ID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, screen.GameLobby))
}

// Leave handles DELETE /api/v1/games/{id}
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	id := gameID(r)

	g, err := h.controller.Reset(r.Context(), id, ident.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if g == nil {
		h.hubManager.CloseHub(id)
	}

	response.NoContent(w)
}

// Leaderboard handles GET /api/v1/games/{id}/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.controller.Leaderboard(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// Timer handles GET /api/v1/games/{id}/timer
func (h *GameHandler) Timer(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	// Confirm the game exists before reporting on its countdown
	if _, err := h.controller.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	remaining, running := h.controller.Remaining(id)
	response.JSON(w, http.StatusOK, response.Timer{
		GameID:      string(id),
		RemainingMS: remaining.Milliseconds(),
		Running:     running,
	})
}

// Share handles GET /api/v1/games/{id}/share. With ?format=qr the invite
// link comes back as a PNG QR code instead of JSON.
func (h *GameHandler) Share(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	if _, err := h.controller.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	link := screen.JoinLink(h.baseURL, id)

	if r.URL.Query().Get("format") == "qr" {
		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
		return
	}

	response.JSON(w, http.StatusOK, response.Share{
		GameID: string(id),
		Link:   link,
	})
}

// Events handles GET /api/v1/games/{id}/events, the per-game SSE stream
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	id := gameID(r)

	if _, err := h.controller.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, ident.ID)
}
