// cmd/server/main.go
package main

import (
    "context"
    "log"
    "net/http"
    "os"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/cors"
    "github.com/joho/godotenv"

    "github.com/unclebandit/morningpost-backend/internal/auth"
    "github.com/unclebandit/morningpost-backend/internal/controller"
    "github.com/unclebandit/morningpost-backend/internal/db"
    "github.com/unclebandit/morningpost-backend/internal/gmail"
    "github.com/unclebandit/morningpost-backend/internal/handler"
    "github.com/unclebandit/morningpost-backend/internal/queue"
    "github.com/unclebandit/morningpost-backend/internal/repository"
    "github.com/unclebandit/morningpost-backend/internal/service"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    // Init DB
    db.Init()

    subscriberRepo := &repository.SubscriberRepository{DB: db.DB}
    templateRepo := &repository.TemplateRepository{DB: db.DB}
    logRepo := &repository.EmailLogRepository{DB: db.DB}
    scheduleRepo := &repository.ScheduleRepository{DB: db.DB}
    userRepo := &repository.UserRepository{DB: db.DB}

    // Delivery events go to RabbitMQ when a broker is configured,
    // otherwise to the in-memory queue (dropped without subscribers).
    var events queue.Queue = queue.NewInMemoryQueue()
    if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
        amqpQueue, err := queue.DialAMQP(amqpURL)
        if err != nil {
            log.Println("⚠️ Failed to connect to RabbitMQ, delivery events disabled:", err)
        } else {
            defer amqpQueue.Close()
            events = amqpQueue
        }
    }

    ctx := context.Background()

    gmailClient, err := gmail.NewClient(ctx, gmail.Config{
        ClientID:     os.Getenv("GMAIL_CLIENT_ID"),
        ClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
        RefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
        From:         os.Getenv("EMAIL_FROM"),
    })
    if err != nil {
        log.Fatalf("failed to create gmail client: %v", err)
    }

    metals := &service.MetalsService{APIKey: os.Getenv("GOLD_API_KEY")}

    emailService := &service.EmailService{
        TemplateRepo:   templateRepo,
        SubscriberRepo: subscriberRepo,
        LogRepo:        logRepo,
        Sender:         gmailClient,
        Metals:         metals,
        Events:         events,
    }

    scheduler := &service.Scheduler{
        ScheduleRepo: scheduleRepo,
        TemplateRepo: templateRepo,
        Email:        emailService,
    }
    if err := scheduler.Initialize(); err != nil {
        log.Println("⚠️ Failed to initialize scheduler:", err)
    }

    frontendURL := os.Getenv("FRONTEND_URL")
    if frontendURL == "" {
        frontendURL = "http://localhost:5173"
    }

    authService := auth.NewService(
        os.Getenv("GMAIL_CLIENT_ID"),
        os.Getenv("GMAIL_CLIENT_SECRET"),
        os.Getenv("GOOGLE_AUTH_REDIRECT_URI"),
        userRepo,
        []byte(os.Getenv("JWT_SECRET")),
    )

    subscriberController := &controller.SubscriberController{Repo: subscriberRepo}
    templateController := &controller.TemplateController{Repo: templateRepo}
    scheduleController := &controller.ScheduleController{
        Scheduler:    scheduler,
        ScheduleRepo: scheduleRepo,
    }
    authController := &controller.AuthController{
        Auth:        authService,
        Users:       userRepo,
        FrontendURL: frontendURL,
    }
    gmailController := &controller.GmailController{
        OAuth: gmail.OAuthConfig(
            os.Getenv("GMAIL_CLIENT_ID"),
            os.Getenv("GMAIL_CLIENT_SECRET"),
            os.Getenv("GMAIL_REDIRECT_URI"),
        ),
        Client: gmailClient,
    }
    logHandler := &handler.EmailLogHandler{Repo: logRepo}

    r := chi.NewRouter()
    r.Use(cors.Handler(cors.Options{
        AllowedOrigins:   []string{frontendURL, "http://localhost:5173", "http://localhost:3000"},
        AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
        AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
        AllowCredentials: true,
    }))

    r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"status":"ok"}`))
    })

    // Auth routes (no session required)
    r.Get("/api/auth/google/url", authController.GoogleURL)
    r.Get("/api/auth/google/callback", authController.GoogleCallback)

    // Everything else requires an operator session
    r.Group(func(r chi.Router) {
        r.Use(authService.Middleware)

        r.Get("/api/auth/me", authController.Me)

        // Subscriber routes
        r.Get("/api/subscribers", subscriberController.ListSubscribers)
        r.Get("/api/subscribers/stats", subscriberController.GetStats)
        r.Post("/api/subscribers", subscriberController.CreateSubscriber)
        r.Post("/api/subscribers/import", subscriberController.ImportSubscribers)
        r.Get("/api/subscribers/{id}", subscriberController.GetSubscriber)
        r.Put("/api/subscribers/{id}", subscriberController.UpdateSubscriber)
        r.Patch("/api/subscribers/{id}/toggle", subscriberController.ToggleSubscriber)
        r.Delete("/api/subscribers/{id}", subscriberController.DeleteSubscriber)

        // Template routes
        r.Get("/api/templates", templateController.ListTemplates)
        r.Post("/api/templates", templateController.CreateTemplate)
        r.Get("/api/templates/{id}", templateController.GetTemplate)
        r.Put("/api/templates/{id}", templateController.UpdateTemplate)
        r.Patch("/api/templates/{id}/toggle", templateController.ToggleTemplate)
        r.Delete("/api/templates/{id}", templateController.DeleteTemplate)
        r.Post("/api/templates/{id}/preview", templateController.PreviewTemplate)

        // Schedule routes
        r.Get("/api/schedule", scheduleController.GetSchedule)
        r.Put("/api/schedule", scheduleController.UpdateSchedule)
        r.Post("/api/schedule/send", scheduleController.TriggerSend)
        r.Get("/api/schedule/logs", logHandler.GetLogsHandler)
        r.Get("/api/schedule/stats", logHandler.GetStatsHandler)

        // Gmail bootstrap routes
        r.Get("/api/gmail/auth-url", gmailController.AuthURL)
        r.Get("/api/gmail/callback", gmailController.Callback)
        r.Get("/api/gmail/test", gmailController.Test)
    })

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }

    log.Println("🚀 Server running on :" + port)
    log.Fatal(http.ListenAndServe(":"+port, r))
}
