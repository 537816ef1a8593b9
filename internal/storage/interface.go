package storage

import (
	"context"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Identity operations
	SaveIdentity(ctx context.Context, identity *model.Identity) error
	GetIdentity(ctx context.Context, id model.PlayerID) (*model.Identity, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)
}
