package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeUsernameRequired = "USERNAME_REQUIRED"
	CodeIdentityNotFound = "IDENTITY_NOT_FOUND"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeGameNotJoinable  = "GAME_NOT_JOINABLE"
	CodeGameNotPending   = "GAME_NOT_PENDING"
	CodeGameNotActive    = "GAME_NOT_ACTIVE"
	CodeNotHost          = "NOT_HOST"
	CodeNotInGame        = "NOT_IN_GAME"
	CodeCannotKickHost   = "CANNOT_KICK_HOST"
	CodeAlreadyFinished  = "ALREADY_FINISHED"
	CodeInvalidPages     = "INVALID_PAGES"
	CodeInvalidTimeLimit = "INVALID_TIME_LIMIT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrIdentityNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeIdentityNotFound, "Identity not found"}}
	case errors.Is(err, model.ErrUsernameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeUsernameRequired, "Please set your username first"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeGameNotJoinable, "This game has already started or ended"}}
	case errors.Is(err, model.ErrGameNotPending):
		return &httpError{http.StatusConflict, APIError{CodeGameNotPending, "Game has already started"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not currently active"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotInGame):
		return &httpError{http.StatusNotFound, APIError{CodeNotInGame, "Player is not in this game"}}
	case errors.Is(err, model.ErrCannotKickHost):
		return &httpError{http.StatusForbidden, APIError{CodeCannotKickHost, "The host cannot be kicked"}}
	case errors.Is(err, model.ErrAlreadyFinished):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyFinished, "Player has already finished"}}
	case errors.Is(err, model.ErrInvalidPages):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPages, "Start and end pages are required"}}
	case errors.Is(err, model.ErrInvalidTimeLimit):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTimeLimit, "Time limit must be positive"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Device token required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
