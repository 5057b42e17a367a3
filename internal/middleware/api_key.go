package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"roamio/gazetteer/internal/logging"
)

// APIKeyMiddleware guards the admin endpoints with a static key carried in
// the X-API-Key header. An empty configured key disables the check, which
// is the local development default.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logging.Warn("rejected admin request with bad api key",
					"path", r.URL.Path, "remote", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"status":    "error",
					"timestamp": time.Now().UTC(),
					"error":     "invalid or missing api key",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
