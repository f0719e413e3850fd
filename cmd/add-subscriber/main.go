// cmd/add-subscriber/main.go
package main

import (
    "fmt"
    "log"
    "os"

    "github.com/joho/godotenv"
    _ "github.com/lib/pq"

    "github.com/unclebandit/morningpost-backend/internal/db"
    "github.com/unclebandit/morningpost-backend/internal/model"
    "github.com/unclebandit/morningpost-backend/internal/repository"
)

func main() {
    if len(os.Args) < 3 {
        fmt.Println(`Usage: add-subscriber "Name" email@example.com`)
        os.Exit(1)
    }
    name, email := os.Args[1], os.Args[2]

    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }
    db.Init()

    repo := &repository.SubscriberRepository{DB: db.DB}

    existing, err := repo.GetByEmail(email)
    if err != nil {
        log.Fatal(err)
    }
    if existing != nil {
        fmt.Printf("⚠️ Subscriber with email %s already exists\n", email)
        return
    }

    subscriber := &model.Subscriber{Name: name, Email: email, IsActive: true}
    if err := repo.Create(subscriber); err != nil {
        log.Fatal(err)
    }

    fmt.Printf("✅ Added subscriber: %s (%s)\n", subscriber.Name, subscriber.Email)
}
