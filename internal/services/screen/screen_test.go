package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperhustle/hustle-go/internal/model"
)

func TestResolveNoGameKeepsIntent(t *testing.T) {
	assert.Equal(t, MainMenu, Resolve(MainMenu, nil))
	assert.Equal(t, JoinGame, Resolve(JoinGame, nil))
}

func TestResolvePendingKeepsIntent(t *testing.T) {
	g := &model.Game{Status: model.GameStatusPending}
	assert.Equal(t, GameLobby, Resolve(GameLobby, g))
	assert.Equal(t, CreateGame, Resolve(CreateGame, g))
}

func TestResolveActiveForcesGamePlay(t *testing.T) {
	g := &model.Game{Status: model.GameStatusActive}
	for _, intent := range []Screen{Username, MainMenu, CreateGame, JoinGame, GameLobby, Leaderboard} {
		assert.Equal(t, GamePlay, Resolve(intent, g), "intent %s", intent)
	}
}

func TestResolveCompletedForcesLeaderboard(t *testing.T) {
	g := &model.Game{Status: model.GameStatusCompleted}
	for _, intent := range []Screen{Username, MainMenu, GameLobby, GamePlay} {
		assert.Equal(t, Leaderboard, Resolve(intent, g), "intent %s", intent)
	}
}

func TestJoinLinkRoundTrip(t *testing.T) {
	link := JoinLink("https://hustle.example.com/", "ABC123")
	assert.Contains(t, link, "gameId=ABC123")

	id, ok := ParseJoinLink(link)
	assert.True(t, ok)
	assert.Equal(t, model.GameID("ABC123"), id)
}

func TestParseJoinLinkAbsent(t *testing.T) {
	_, ok := ParseJoinLink("https://hustle.example.com/")
	assert.False(t, ok)
}
