package middleware

import (
	"io"
	"net/http"
)

// leftover bodies bigger than this are not worth saving the connection for
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest reads out what the handler left of the request body
// (up to maxDrainBytes) and closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
