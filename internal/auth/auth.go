// internal/auth/auth.go
package auth

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/oauth2"
    "golang.org/x/oauth2/google"
    oauth2api "google.golang.org/api/oauth2/v2"
    "google.golang.org/api/option"

    "github.com/unclebandit/morningpost-backend/internal/model"
    "github.com/unclebandit/morningpost-backend/internal/repository"
)

// Operator sessions live for a week.
const tokenTTL = 7 * 24 * time.Hour

// Service handles operator sign-in with Google and the JWT session
// tokens handed to the console.
type Service struct {
    OAuth     *oauth2.Config
    Users     repository.UserRepositoryInterface
    JWTSecret []byte
}

func NewService(clientID, clientSecret, redirectURI string, users repository.UserRepositoryInterface, jwtSecret []byte) *Service {
    return &Service{
        OAuth: &oauth2.Config{
            ClientID:     clientID,
            ClientSecret: clientSecret,
            RedirectURL:  redirectURI,
            Endpoint:     google.Endpoint,
            Scopes: []string{
                "https://www.googleapis.com/auth/userinfo.email",
                "https://www.googleapis.com/auth/userinfo.profile",
            },
        },
        Users:     users,
        JWTSecret: jwtSecret,
    }
}

// AuthURL returns the Google consent URL for the sign-in flow.
func (s *Service) AuthURL() string {
    return s.OAuth.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// HandleCallback exchanges the authorization code, resolves the Google
// account to a local operator (creating or linking as needed) and issues
// a session token.
func (s *Service) HandleCallback(ctx context.Context, code string) (string, error) {
    token, err := s.OAuth.Exchange(ctx, code)
    if err != nil {
        return "", fmt.Errorf("failed to exchange code: %w", err)
    }

    svc, err := oauth2api.NewService(ctx, option.WithTokenSource(s.OAuth.TokenSource(ctx, token)))
    if err != nil {
        return "", err
    }
    googleUser, err := svc.Userinfo.Get().Do()
    if err != nil {
        return "", fmt.Errorf("failed to fetch user info: %w", err)
    }
    if googleUser.Email == "" {
        return "", fmt.Errorf("google account has no email")
    }

    user, err := s.Users.GetByEmail(googleUser.Email)
    if err != nil {
        return "", err
    }

    if user == nil {
        name := googleUser.Name
        if name == "" {
            name = strings.Split(googleUser.Email, "@")[0]
        }
        user = &model.User{
            Email:    googleUser.Email,
            Name:     name,
            GoogleID: googleUser.Id,
        }
        if err := s.Users.Create(user); err != nil {
            return "", err
        }
    } else if user.GoogleID == "" {
        if err := s.Users.LinkGoogleID(user.ID, googleUser.Id); err != nil {
            return "", err
        }
        user.GoogleID = googleUser.Id
    }

    return s.IssueToken(user.ID)
}

// IssueToken signs a session JWT for the given operator.
func (s *Service) IssueToken(userID int) (string, error) {
    claims := jwt.MapClaims{
        "user_id": userID,
        "exp":     time.Now().Add(tokenTTL).Unix(),
        "iat":     time.Now().Unix(),
    }
    return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

// ParseToken verifies a session JWT and returns the operator id.
func (s *Service) ParseToken(tokenString string) (int, error) {
    token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
        }
        return s.JWTSecret, nil
    })
    if err != nil {
        return 0, err
    }

    claims, ok := token.Claims.(jwt.MapClaims)
    if !ok || !token.Valid {
        return 0, fmt.Errorf("invalid token")
    }
    userID, ok := claims["user_id"].(float64)
    if !ok {
        return 0, fmt.Errorf("invalid token claims")
    }
    return int(userID), nil
}
