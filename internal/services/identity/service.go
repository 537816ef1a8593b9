package identity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hyperhustle/hustle-go/internal/dependencies/clock"
	"github.com/hyperhustle/hustle-go/internal/dependencies/random"
	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/storage"
)

// TokenPrefix marks device identity tokens
const TokenPrefix = "d_"

// Service issues and resolves stable per-device identities. A device
// registers once, receives a token, and presents it unchanged on every
// later request; the token doubles as the PlayerID inside games.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new identity service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Register issues a fresh identity with the given username
func (s *Service) Register(ctx context.Context, username string) (*model.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.ErrUsernameRequired
	}

	identity := &model.Identity{
		ID:        model.PlayerID(s.random.Token(TokenPrefix)),
		Username:  username,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("identity registered",
		slog.String("player_id", string(identity.ID)),
		slog.String("username", username),
	)

	return identity, nil
}

// Get resolves an identity by token
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Identity, error) {
	return s.storage.GetIdentity(ctx, id)
}

// SetUsername updates the display name. No backend validation beyond
// non-emptiness; games in progress keep the name the player joined with.
func (s *Service) SetUsername(ctx context.Context, id model.PlayerID, username string) (*model.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.ErrUsernameRequired
	}

	identity, err := s.storage.GetIdentity(ctx, id)
	if err != nil {
		return nil, err
	}

	identity.Username = username
	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}
