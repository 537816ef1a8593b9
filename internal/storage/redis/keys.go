package redis

import (
	"fmt"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// Key prefix for all race-related data
const keyPrefix = "hustle"

// identityKey returns the Redis key for an Identity
func identityKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:identity:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}
