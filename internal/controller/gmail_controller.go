// internal/controller/gmail_controller.go
package controller

import (
    "net/http"

    "golang.org/x/oauth2"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/gmail"
)

// GmailController exposes the one-time refresh-token bootstrap and a
// connection test for the sending mailbox.
type GmailController struct {
    OAuth  *oauth2.Config
    Client *gmail.Client
}

func (c *GmailController) AuthURL(w http.ResponseWriter, r *http.Request) {
    respondJSON(w, http.StatusOK, map[string]string{"authUrl": gmail.AuthURL(c.OAuth)})
}

// Callback trades the authorization code for tokens and shows them to
// the operator: the refresh token goes into .env as GMAIL_REFRESH_TOKEN.
func (c *GmailController) Callback(w http.ResponseWriter, r *http.Request) {
    code := r.URL.Query().Get("code")
    if code == "" {
        respondError(w, appErrors.NewValidation("authorization code is required"))
        return
    }

    token, err := gmail.ExchangeCode(r.Context(), c.OAuth, code)
    if err != nil {
        respondJSON(w, http.StatusBadRequest, map[string]string{
            "error":   "failed to exchange code for tokens",
            "details": err.Error(),
        })
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "message": "Authorization successful! Copy the refresh_token to your .env file as GMAIL_REFRESH_TOKEN",
        "tokens": map[string]any{
            "access_token":  token.AccessToken,
            "refresh_token": token.RefreshToken,
            "expiry":        token.Expiry,
        },
    })
}

func (c *GmailController) Test(w http.ResponseWriter, r *http.Request) {
    if c.Client == nil {
        respondJSON(w, http.StatusBadRequest, map[string]any{
            "success": false,
            "error":   "gmail client is not configured",
        })
        return
    }

    email, err := c.Client.TestConnection(r.Context())
    if err != nil {
        respondJSON(w, http.StatusBadRequest, map[string]any{
            "success": false,
            "error":   err.Error(),
        })
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success": true,
        "message": "Gmail connection successful!",
        "email":   email,
    })
}
