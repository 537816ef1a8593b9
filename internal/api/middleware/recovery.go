package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hyperhustle/hustle-go/internal/api/apierr"
	"github.com/hyperhustle/hustle-go/internal/middleware"
)

// Recovery creates panic recovery middleware that returns JSON error
// responses
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

// Logging re-exports the shared request logging middleware
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
