package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrIdentityNotFound = errors.New("identity not found")
	ErrUsernameRequired = errors.New("username is required")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNotJoinable  = errors.New("game has already started or ended")
	ErrGameNotPending   = errors.New("game is not pending")
	ErrGameNotActive    = errors.New("game is not active")
	ErrNotHost          = errors.New("player is not the host")
	ErrNotInGame        = errors.New("player is not in the game")
	ErrCannotKickHost   = errors.New("host cannot be kicked")
	ErrAlreadyFinished  = errors.New("player has already finished")
	ErrInvalidPages     = errors.New("start and end pages are required")
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
)
