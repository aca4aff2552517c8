package middleware

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// SetupLoggerMiddleware logs requests through gecho. The prometheus scrape
// endpoint bypasses it; scrapes every few seconds would drown the request
// log.
func (mw *Middleware) SetupLoggerMiddleware() func(http.Handler) http.Handler {
	logging := gecho.Handlers.CreateLoggingMiddleware(mw.logger)

	return func(next http.Handler) http.Handler {
		logged := logging(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
