package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/common/security"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserCtxKey      contextKey = "user"
	SessionIDCtxKey contextKey = "sessionID"
)

// Authenticator requires a valid token whose session is still live. A signed
// token with a revoked session is treated the same as no session at all: the
// caller must authenticate again.
func Authenticator(sessions *service.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

			if err != nil {
				if strings.Contains(err.Error(), "token not found") || token == nil {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}
			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			sessionID, err := security.GetSessionIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			user, err := sessions.Current(r.Context(), sessionID)
			if err != nil {
				common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve session")
				return
			}
			if user == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Session expired or signed out")
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			ctx = context.WithValue(ctx, SessionIDCtxKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get the authenticated user from context
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}

// Helper to get the session id from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}
