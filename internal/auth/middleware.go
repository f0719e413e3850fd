// internal/auth/middleware.go
package auth

import (
    "context"
    "net/http"
    "strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Middleware rejects requests without a valid Bearer session token and
// stores the operator id on the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        header := r.Header.Get("Authorization")
        if !strings.HasPrefix(header, "Bearer ") {
            http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
            return
        }

        userID, err := s.ParseToken(strings.TrimPrefix(header, "Bearer "))
        if err != nil {
            http.Error(w, "invalid or expired token", http.StatusUnauthorized)
            return
        }

        ctx := context.WithValue(r.Context(), userIDKey, userID)
        next.ServeHTTP(w, r.WithContext(ctx))
    })
}

// UserID returns the operator id stored by Middleware, or 0.
func UserID(ctx context.Context) int {
    id, _ := ctx.Value(userIDKey).(int)
    return id
}
