package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/auth"
	"github.com/2beens/gymtrack/internal/telemetry/metrics"
)

// PanicRecovery turns a panicking handler into a 500. The panic is logged at error
// level, which the sentry hook forwards.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				// the user id is not known yet, the auth middleware runs later in the chain
				log.WithFields(log.Fields{
					"route":  routeName(r),
					"bearer": auth.BearerToken(r) != "",
				}).Errorf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
