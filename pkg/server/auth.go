package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/wattbill/wattbill/pkg/log"
)

// authMiddleware validates a Google ID token from the Authorization
// header when an audience is configured. With no audience configured,
// requests pass through unauthenticated.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("reqPath", r.URL.Path)))
		r = r.WithContext(ctx)

		if s.bypassAuth {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSONError(w, "missing authorization header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Ctx(ctx).ErrorContext(ctx, "invalid auth header")
			writeJSONError(w, "invalid auth header", http.StatusBadRequest)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		idToken, err := s.verifier(ctx, token)
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "token verification failed", slog.Any("error", err))
			writeJSONError(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("subject", idToken.Subject)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
