package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyperhustle/hustle-go/internal/api/response"
	"github.com/hyperhustle/hustle-go/internal/article"
	"github.com/hyperhustle/hustle-go/internal/services/content"
)

// ContentHandler serves sanitized article pages
type ContentHandler struct {
	contentService *content.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *content.Service) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// Get handles GET /api/v1/content/{title}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]
	if title == "" {
		WriteError(w, NewInvalidRequestError("article title is required"))
		return
	}

	page, err := h.contentService.Fetch(r.Context(), article.PathMarker+title)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}
