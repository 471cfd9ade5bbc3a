package middleware

import (
	"io"
	"net/http"
)

// unread bodies larger than this are not worth draining, the connection is dropped instead
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest reads up to maxDrainBytes of whatever the handler left in the
// request body and closes it.
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
