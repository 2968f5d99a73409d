package server

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// recoverer turns a handler panic into a logged 500 with the standard error envelope.
func recoverer(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log := logging.FromContextOr(r.Context(), base)
				log.Error().
					Interface("panic", rvr).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				httperrors.RespondInternalError(w, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
