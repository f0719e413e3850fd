// internal/controller/auth_controller.go
package controller

import (
    "log"
    "net/http"

    "github.com/unclebandit/morningpost-backend/internal/auth"
    "github.com/unclebandit/morningpost-backend/internal/repository"
)

type AuthController struct {
    Auth        *auth.Service
    Users       repository.UserRepositoryInterface
    FrontendURL string
}

func (c *AuthController) GoogleURL(w http.ResponseWriter, r *http.Request) {
    respondJSON(w, http.StatusOK, map[string]string{"authUrl": c.Auth.AuthURL()})
}

// GoogleCallback finishes the sign-in flow and redirects back to the
// console with a session token in the fragmentless query, the way the
// frontend expects it.
func (c *AuthController) GoogleCallback(w http.ResponseWriter, r *http.Request) {
    code := r.URL.Query().Get("code")
    if code == "" {
        http.Redirect(w, r, c.FrontendURL+"/login?error=no_code", http.StatusTemporaryRedirect)
        return
    }

    token, err := c.Auth.HandleCallback(r.Context(), code)
    if err != nil {
        log.Println("Google auth error:", err)
        http.Redirect(w, r, c.FrontendURL+"/login?error=auth_failed", http.StatusTemporaryRedirect)
        return
    }

    http.Redirect(w, r, c.FrontendURL+"/auth/callback?token="+token, http.StatusTemporaryRedirect)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
    userID := auth.UserID(r.Context())

    user, err := c.Users.GetByID(userID)
    if err != nil {
        respondError(w, err)
        return
    }
    if user == nil {
        respondJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
        return
    }
    respondJSON(w, http.StatusOK, user)
}
