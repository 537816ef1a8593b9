// Package screen maps game status and local navigation intent to the view a
// client should render. It is a pure projection over game state.
package screen

import (
	"net/url"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// Screen identifies one of the fixed set of client views
type Screen string

const (
	Username    Screen = "username"
	MainMenu    Screen = "main_menu"
	CreateGame  Screen = "create_game"
	JoinGame    Screen = "join_game"
	GameLobby   Screen = "game_lobby"
	GamePlay    Screen = "game_play"
	Leaderboard Screen = "leaderboard"
)

// Resolve selects the screen to render. Game status overrides local intent:
// an active game always shows play, a completed game always shows the
// leaderboard. With no game in hand the local intent stands.
func Resolve(intent Screen, game *model.Game) Screen {
	if game == nil {
		return intent
	}
	switch game.Status {
	case model.GameStatusActive:
		return GamePlay
	case model.GameStatusCompleted:
		return Leaderboard
	default:
		return intent
	}
}

// joinParam is the query parameter carrying a game id in share links
const joinParam = "gameId"

// JoinLink builds the shareable link for a game: the base origin plus a
// query parameter carrying the join code.
func JoinLink(baseURL string, gameID model.GameID) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set(joinParam, string(gameID))
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseJoinLink extracts the game id from a share link, if present. Clients
// auto-attempt a join on load when a link carries one and a username is
// already set.
func ParseJoinLink(link string) (model.GameID, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	id := u.Query().Get(joinParam)
	if id == "" {
		return "", false
	}
	return model.GameID(id), true
}
