// cmd/send-test/main.go
package main

import (
    "context"
    "fmt"
    "log"
    "os"
    "strconv"

    "github.com/joho/godotenv"
    _ "github.com/lib/pq"

    "github.com/unclebandit/morningpost-backend/internal/db"
    "github.com/unclebandit/morningpost-backend/internal/gmail"
    "github.com/unclebandit/morningpost-backend/internal/repository"
    "github.com/unclebandit/morningpost-backend/internal/service"
)

// Runs one batch for the given template id against the real store and
// the real Gmail API. For smoke-testing a deployment.
func main() {
    if len(os.Args) < 2 {
        fmt.Println("Usage: send-test <template-id>")
        os.Exit(1)
    }
    templateID, err := strconv.Atoi(os.Args[1])
    if err != nil {
        log.Fatal("invalid template id:", os.Args[1])
    }

    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }
    db.Init()

    ctx := context.Background()

    gmailClient, err := gmail.NewClient(ctx, gmail.Config{
        ClientID:     os.Getenv("GMAIL_CLIENT_ID"),
        ClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
        RefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
        From:         os.Getenv("EMAIL_FROM"),
    })
    if err != nil {
        log.Fatal("failed to create gmail client:", err)
    }

    emailService := &service.EmailService{
        TemplateRepo:   &repository.TemplateRepository{DB: db.DB},
        SubscriberRepo: &repository.SubscriberRepository{DB: db.DB},
        LogRepo:        &repository.EmailLogRepository{DB: db.DB},
        Sender:         gmailClient,
        Metals:         &service.MetalsService{APIKey: os.Getenv("GOLD_API_KEY")},
    }

    result, err := emailService.SendBulk(ctx, templateID)
    if err != nil {
        log.Fatal("send failed:", err)
    }

    fmt.Printf("📊 Test batch complete: %d sent, %d failed, %d total\n",
        result.Sent, result.Failed, result.Total)
}
