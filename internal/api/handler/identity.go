package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hyperhustle/hustle-go/internal/api/middleware"
	"github.com/hyperhustle/hustle-go/internal/api/request"
	"github.com/hyperhustle/hustle-go/internal/api/response"
	"github.com/hyperhustle/hustle-go/internal/services/identity"
)

// IdentityHandler handles device identity endpoints
type IdentityHandler struct {
	identityService *identity.Service
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(identityService *identity.Service) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

// Register handles POST /api/v1/identities. The returned identity id is the
// device token clients persist and present on every later request.
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	ident, err := h.identityService.Register(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.IdentityFromModel(ident))
}

// GetMe handles GET /api/v1/identities/me
func (h *IdentityHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	response.JSON(w, http.StatusOK, response.IdentityFromModel(ident))
}

// UpdateUsername handles PATCH /api/v1/identities/me
func (h *IdentityHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	var req request.UpdateUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.identityService.SetUsername(r.Context(), ident.ID, req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IdentityFromModel(updated))
}
