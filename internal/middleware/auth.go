// Package middleware guards the admin surface. The gate runs before every
// privileged handler and is side-effect-free on success.
package middleware

import (
	"context"
	"net/http"

	"blog/internal/auth"
	"blog/internal/models"
	"blog/internal/store"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

type ctxKey string

const ctxUserIDKey ctxKey = "user_id"

// UserID returns the identity attached by RequireAdmin, or 0 if the gate
// did not run.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(ctxUserIDKey).(int64)
	return id
}

// RequireAdmin extracts and verifies the session token from the cookie,
// resolves the user and checks the admin role. Missing or invalid token →
// 401; valid token but non-admin role → 403. On success the verified user
// id is attached to the request context.
func RequireAdmin(tokens *auth.TokenManager, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				unauthorized(w)
				return
			}

			userID, err := tokens.Verify(c.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				unauthorized(w)
				return
			}

			if user.Role != models.RoleAdmin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"message":"Access denied"}`))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthorized"}`))
}
