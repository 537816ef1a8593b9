package request

// RegisterIdentityRequest is the request body for registering a device identity
type RegisterIdentityRequest struct {
	Username string `json:"username"`
}

// UpdateUsernameRequest is the request body for changing a username
type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	StartPage string `json:"start_page"`
	EndPage   string `json:"end_page"`
	// TimeLimit is the race duration in seconds
	TimeLimit int `json:"time_limit"`
}

// ClickRequest is the request body for reporting a link navigation
type ClickRequest struct {
	URL string `json:"url"`
}

// KickRequest is the request body for kicking a player
type KickRequest struct {
	PlayerID string `json:"player_id"`
}
