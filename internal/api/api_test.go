package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperhustle/hustle-go/internal/api"
	"github.com/hyperhustle/hustle-go/internal/api/response"
	"github.com/hyperhustle/hustle-go/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		TimerPeriod: 10 * time.Millisecond,
		BaseURL:     "http://localhost:8080",
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		GameController:  app.GameController,
		ContentService:  app.ContentService,
		HubManager:      app.HubManager,
		BaseURL:         "http://localhost:8080",
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates a device identity and returns its token
func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/identities", map[string]string{"username": username}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Identity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

// createGame creates a game and returns its join code
func (ts *testServer) createGame(t *testing.T, token, startPage, endPage string, timeLimit int) response.Game {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{
		"start_page": startPage,
		"end_page":   endPage,
		"time_limit": timeLimit,
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterIdentity(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/identities", map[string]string{"username": "alice"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Identity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.ID)
}

func TestRegisterIdentityRequiresUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/identities", map[string]string{"username": "  "}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{
		"start_page": "/wiki/A",
		"end_page":   "/wiki/B",
		"time_limit": 300,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateUsername(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPatch, "/api/v1/identities/me", map[string]string{"username": "alicia"}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/identities/me", nil, token)
	var resp response.Identity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alicia", resp.Username)
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	game := ts.createGame(t, token, "/wiki/Go_(programming_language)", "/wiki/Golf", 300)

	assert.Len(t, game.ID, 6)
	assert.Equal(t, "pending", game.Status)
	assert.Equal(t, "game_lobby", game.Screen)
	require.Len(t, game.Players, 1)
	assert.Equal(t, "alice", game.Players[0].Username)
	assert.True(t, game.Players[0].IsHost)
	assert.Equal(t, 0, game.Players[0].Clicks)
	assert.Equal(t, "/wiki/Go_(programming_language)", game.Players[0].CurrentPage)
}

func TestJoinGame(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.register(t, "alice")
	guestToken := ts.register(t, "bob")

	game := ts.createGame(t, hostToken, "/wiki/A", "/wiki/B", 300)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/join", nil, guestToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joined response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Len(t, joined.Players, 2)
}

func TestJoinUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/games/NOSUCH/join", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartGameNonHostForbidden(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.register(t, "alice")
	guestToken := ts.register(t, "bob")

	game := ts.createGame(t, hostToken, "/wiki/A", "/wiki/B", 300)
	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/join", nil, guestToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/start", nil, guestToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// TestSoloRace walks the whole flow: create, start, navigate straight to the
// target, and read the final leaderboard.
func TestSoloRace(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	game := ts.createGame(t, token, "/wiki/Go_(programming_language)", "/wiki/Golf", 300)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var started response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &started))
	assert.Equal(t, "active", started.Status)
	assert.Equal(t, "game_play", started.Screen)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.EndAt)
	assert.Equal(t, 300*time.Second, started.EndAt.Sub(*started.StartedAt))

	// Fragments and query params must not defeat goal detection
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/click", map[string]string{
		"url": "/wiki/Golf#History",
	}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var result response.ClickResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Finished)
	// Sole player finished, so the game is over
	assert.Equal(t, "completed", result.Game.Status)
	assert.Equal(t, "leaderboard", result.Game.Screen)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/leaderboard", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var board []response.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "alice", board[0].Username)
	assert.Equal(t, 1, board[0].Clicks)
}

func TestKickFlow(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.register(t, "alice")
	guestToken := ts.register(t, "bob")

	game := ts.createGame(t, hostToken, "/wiki/A", "/wiki/B", 300)
	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/join", nil, guestToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var joined response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	var guestID string
	for _, p := range joined.Players {
		if !p.IsHost {
			guestID = p.ID
		}
	}
	require.NotEmpty(t, guestID)

	// Guests cannot kick
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/kick", map[string]string{"player_id": guestID}, guestToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Hosts cannot kick themselves
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/kick", map[string]string{"player_id": joined.HostID}, hostToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/kick", map[string]string{"player_id": guestID}, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var afterKick response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterKick))
	assert.Len(t, afterKick.Players, 1)
	assert.Equal(t, "pending", afterKick.Status)
}

func TestResignCompletesGame(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.register(t, "alice")
	guestToken := ts.register(t, "bob")

	game := ts.createGame(t, hostToken, "/wiki/A", "/wiki/B", 300)
	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/join", nil, guestToken)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/start", nil, hostToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Host finishes
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/click", map[string]string{"url": "/wiki/B"}, hostToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var result response.ClickResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.True(t, result.Finished)
	assert.Equal(t, "active", result.Game.Status)

	// A finished player cannot resign
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/resign", nil, hostToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// The last racer resigning ends the game
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/resign", nil, guestToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var final response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &final))
	assert.Equal(t, "completed", final.Status)
	assert.Equal(t, "leaderboard", final.Screen)
}

func TestTimerEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	game := ts.createGame(t, token, "/wiki/A", "/wiki/B", 300)

	// No countdown before the game starts
	rr := ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/timer", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var timer response.Timer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &timer))
	assert.False(t, timer.Running)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/timer", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &timer))
	assert.True(t, timer.Running)
	assert.Greater(t, timer.RemainingMS, int64(0))
	assert.LessOrEqual(t, timer.RemainingMS, int64(300_000))
}

// TestTimerExpiryEndsGame starts a one-second race and lets the countdown
// run out for real.
func TestTimerExpiryEndsGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	game := ts.createGame(t, token, "/wiki/A", "/wiki/B", 1)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Eventually(t, func() bool {
		rr := ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil, token)
		if rr.Code != http.StatusOK {
			return false
		}
		var g response.Game
		if err := json.Unmarshal(rr.Body.Bytes(), &g); err != nil {
			return false
		}
		return g.Status == "completed"
	}, 3*time.Second, 20*time.Millisecond)

	// The countdown stops along with the game
	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/timer", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var timer response.Timer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &timer))
	assert.False(t, timer.Running)
}

func TestShareLink(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	game := ts.createGame(t, token, "/wiki/A", "/wiki/B", 300)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/share", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var share response.Share
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &share))
	assert.Contains(t, share.Link, "gameId="+game.ID)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/share?format=qr", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Body.Bytes())
}

func TestLeaveGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	game := ts.createGame(t, token, "/wiki/A", "/wiki/B", 300)

	rr := ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Leaving never clears the identity
	rr = ts.request(http.MethodGet, "/api/v1/identities/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// TestGuestLeaveKeepsGame: only the host takes the game down; a guest leaving
// just drops out of the roster.
func TestGuestLeaveKeepsGame(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.register(t, "alice")
	guestToken := ts.register(t, "bob")

	game := ts.createGame(t, hostToken, "/wiki/A", "/wiki/B", 300)
	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/join", nil, guestToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil, guestToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil, hostToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var kept response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &kept))
	assert.Len(t, kept.Players, 1)
}
