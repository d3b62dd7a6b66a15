package http

import (
	"context"
	"net/http"
	"strings"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/security"
)

type contextKey string

const callerKey contextKey = "caller"

// AuthMiddleware verifies the bearer token and stashes the caller identity
// in the request context. The claims are trusted as-is; the auth frontend
// already authenticated the user.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, claims.Caller())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFrom pulls the authenticated caller out of the request context.
func CallerFrom(r *http.Request) *domain.Caller {
	caller, _ := r.Context().Value(callerKey).(*domain.Caller)
	return caller
}

// requireRole wraps a handler so only the given roles can reach it.
// Admins pass every check.
func requireRole(roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFrom(r)
			if caller == nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing caller"})
				return
			}
			if caller.Role == domain.RoleAdmin {
				next(w, r)
				return
			}
			for _, role := range roles {
				if caller.Role == role {
					next(w, r)
					return
				}
			}
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "access denied"})
		}
	}
}
