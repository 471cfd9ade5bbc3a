package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/auth"
)

// LogRequest traces every request with its route, status and duration.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !log.IsLevelEnabled(log.TraceLevel) {
				next.ServeHTTP(w, r)
				return
			}

			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}
			next.ServeHTTP(resp, r)

			log.WithFields(log.Fields{
				"method": r.Method,
				"route":  routeName(r),
				"status": resp.statusCode,
				"took":   time.Since(begin).String(),
				"bearer": auth.BearerToken(r) != "",
				"ua":     r.Header.Get("User-Agent"),
			}).Tracef(" ====> %s %s", r.Method, r.URL.Path)
		})
	}
}
