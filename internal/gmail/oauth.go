// internal/gmail/oauth.go
package gmail

import (
    "context"

    "golang.org/x/oauth2"
    "golang.org/x/oauth2/google"
    gmailapi "google.golang.org/api/gmail/v1"
)

// OAuthConfig builds the config for the one-time refresh-token
// bootstrap: the operator visits the consent URL, Google redirects back
// with a code, and ExchangeCode trades it for tokens to put in .env.
func OAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
    return &oauth2.Config{
        ClientID:     clientID,
        ClientSecret: clientSecret,
        RedirectURL:  redirectURI,
        Endpoint:     google.Endpoint,
        Scopes: []string{
            gmailapi.GmailSendScope,
            gmailapi.GmailReadonlyScope,
        },
    }
}

func AuthURL(cfg *oauth2.Config) string {
    return cfg.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func ExchangeCode(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
    return cfg.Exchange(ctx, code)
}
