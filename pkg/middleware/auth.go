package middleware

import (
	"net/http"
	"strings"

	"drivio/pkg/auth"
	"drivio/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// Authenticate resolves a Bearer token into an Identity on the request
// context. Requests without a token pass through anonymously; route guards
// decide whether anonymous access is allowed. A present but invalid token is
// rejected outright.
func Authenticate(maker *auth.TokenMaker, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				rejectUnauthorized(w, "Authorization header must be a Bearer token")
				return
			}

			claims, err := maker.Verify(token)
			if err != nil {
				log.Warn("Token verification failed",
					"request_id", requestIDFromContext(r.Context()),
					"error", err,
				)
				rejectUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth guards a route that needs an authenticated requester.
func RequireAuth(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := auth.IdentityFromContext(r.Context()); !ok {
			rejectUnauthorized(w, "Authentication required")
			return
		}
		h(w, r, ps)
	}
}

// RequireOwner guards a route that needs the owner role.
func RequireOwner(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			rejectUnauthorized(w, "Authentication required")
			return
		}
		if !id.IsOwner() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Owner role required"}`))
			return
		}
		h(w, r, ps)
	}
}

func rejectUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
