// internal/gmail/client.go
package gmail

import (
    "context"
    "encoding/base64"
    "fmt"
    "mime"
    "strings"

    "golang.org/x/oauth2"
    "golang.org/x/oauth2/google"
    gmailapi "google.golang.org/api/gmail/v1"
    "google.golang.org/api/option"
)

// Config holds the OAuth2 credentials for the sending mailbox. The
// refresh token is minted once through the /api/gmail bootstrap flow and
// supplied via the environment; access tokens are refreshed by the
// oauth2 transport.
type Config struct {
    ClientID     string
    ClientSecret string
    RefreshToken string
    From         string
}

// Client sends newsletter emails through the Gmail API.
type Client struct {
    service *gmailapi.Service
    from    string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
    if cfg.From == "" {
        return nil, fmt.Errorf("gmail: sender address is required")
    }

    oauthCfg := &oauth2.Config{
        ClientID:     cfg.ClientID,
        ClientSecret: cfg.ClientSecret,
        Endpoint:     google.Endpoint,
        Scopes:       []string{gmailapi.GmailSendScope},
    }

    token := &oauth2.Token{
        RefreshToken: cfg.RefreshToken,
    }

    svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
    if err != nil {
        return nil, fmt.Errorf("gmail: failed to create service: %w", err)
    }

    return &Client{service: svc, from: cfg.From}, nil
}

// Send delivers one HTML email and returns the provider message id.
// Every failure mode (auth, network, malformed address) surfaces as a
// single error; there is no partial success for one message.
func (c *Client) Send(ctx context.Context, to, subject, html string) (string, error) {
    msg := &gmailapi.Message{
        Raw: buildRawMessage(c.from, to, subject, html),
    }

    resp, err := c.service.Users.Messages.Send("me", msg).Context(ctx).Do()
    if err != nil {
        return "", fmt.Errorf("gmail: failed to send email: %w", err)
    }
    return resp.Id, nil
}

// TestConnection fetches the authenticated profile, returning the
// mailbox address.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
    profile, err := c.service.Users.GetProfile("me").Context(ctx).Do()
    if err != nil {
        return "", fmt.Errorf("gmail: connection test failed: %w", err)
    }
    return profile.EmailAddress, nil
}

// encodeSubject word-encodes the subject per RFC 2047 so emojis and
// other non-ASCII characters survive transport. ASCII-only subjects pass
// through unchanged.
func encodeSubject(subject string) string {
    return mime.BEncoding.Encode("UTF-8", subject)
}

// buildRawMessage assembles the RFC 822 envelope and encodes it in the
// base64url form the Gmail API expects.
func buildRawMessage(from, to, subject, html string) string {
    email := strings.Join([]string{
        "To: " + to,
        "From: " + from,
        "Subject: " + encodeSubject(subject),
        "MIME-Version: 1.0",
        "Content-Type: text/html; charset=utf-8",
        "",
        html,
    }, "\r\n")

    return base64.RawURLEncoding.EncodeToString([]byte(email))
}
