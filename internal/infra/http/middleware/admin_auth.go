package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const adminRealm = `Basic realm="quiz-admin", charset="UTF-8"`

// AdminAuth gates the admin listings behind HTTP basic auth. With no
// credentials configured every request is refused, so an unconfigured
// deployment never exposes lead data.
func AdminAuth(user, pass string, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	configured := user != "" && pass != ""

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !configured {
				logger.Warn("admin request refused: no admin credentials configured",
					zap.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			u, p, ok := r.BasicAuth()
			if !ok || !equal(u, user) || !equal(p, pass) {
				logger.Info("admin request refused", zap.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", adminRealm)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": "admin credentials required",
	})
}
