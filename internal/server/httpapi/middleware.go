package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"itemvault/internal/common"
	"itemvault/internal/logging"
	"itemvault/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// userIDFrom returns the user id the auth middleware resolved into the
// request context. Empty outside authenticated routes.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// loggingMiddleware logs every request with method, path, status and
// duration.
func loggingMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			log.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// authMiddleware verifies the bearer token and resolves the user id into
// the request context.
func authMiddleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthHeaderName)
			prefix := common.AuthScheme + " "
			if !strings.HasPrefix(header, prefix) {
				writeError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, prefix))

			userID, err := auth.GetUserIDFromToken(token, secretKey)
			if err != nil {
				writeError(w, http.StatusUnauthorized, common.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
