package memory

import (
	"context"
	"sync"

	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are deep-copied on both save and load so callers always operate on
// snapshots, never on shared mutable state.
type Storage struct {
	mu sync.RWMutex

	identities map[model.PlayerID]*model.Identity
	games      map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		identities: make(map[model.PlayerID]*model.Identity),
		games:      make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *identity
	s.identities[identity.ID] = &cp
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.PlayerID) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	cp := *identity
	return &cp, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}
