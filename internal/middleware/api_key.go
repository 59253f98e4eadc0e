package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vidfriends/videoembed/internal/logging"
)

// APIKeyHeader is checked before the Authorization bearer token.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey guards write endpoints with a shared key whose bcrypt hash is
// configured. An empty hash disables the guarded endpoints entirely.
func RequireAPIKey(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())

			if hash == "" {
				logger.Warn("write endpoint called without a configured api key")
				writeError(w, http.StatusServiceUnavailable, "write endpoints are disabled")
				return
			}

			key := presentedKey(r)
			if key == "" {
				writeError(w, http.StatusUnauthorized, "api key required")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
				logger.Warn("api key mismatch", "remote", ClientIP(r))
				writeError(w, http.StatusUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func presentedKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(APIKeyHeader)); key != "" {
		return key
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
