// internal/controller/subscriber_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "net/mail"
    "strconv"
    "sync"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/model"
    "github.com/unclebandit/morningpost-backend/internal/repository"
)

type SubscriberController struct {
    Repo repository.SubscriberRepositoryInterface
}

type subscriberPayload struct {
    Email    string `json:"email"`
    Name     string `json:"name"`
    IsActive *bool  `json:"is_active,omitempty"`
}

func (p *subscriberPayload) validate() error {
    if p.Name == "" {
        return appErrors.NewValidation("name is required")
    }
    if _, err := mail.ParseAddress(p.Email); err != nil {
        return appErrors.NewValidation("invalid email address")
    }
    return nil
}

func (c *SubscriberController) ListSubscribers(w http.ResponseWriter, r *http.Request) {
    subscribers, err := c.Repo.ListAll()
    if err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, subscribers)
}

func (c *SubscriberController) GetStats(w http.ResponseWriter, r *http.Request) {
    stats, err := c.Repo.Stats()
    if err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, stats)
}

func (c *SubscriberController) GetSubscriber(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondError(w, appErrors.NewValidation("invalid subscriber id"))
        return
    }

    subscriber, err := c.Repo.GetByID(id)
    if err != nil {
        respondError(w, err)
        return
    }
    if subscriber == nil {
        respondError(w, appErrors.NewSubscriberNotFound(id))
        return
    }
    respondJSON(w, http.StatusOK, subscriber)
}

func (c *SubscriberController) CreateSubscriber(w http.ResponseWriter, r *http.Request) {
    var body subscriberPayload
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondError(w, appErrors.NewValidation("invalid body"))
        return
    }
    if err := body.validate(); err != nil {
        respondError(w, err)
        return
    }

    existing, err := c.Repo.GetByEmail(body.Email)
    if err != nil {
        respondError(w, err)
        return
    }
    if existing != nil {
        respondError(w, appErrors.NewValidation("email already subscribed"))
        return
    }

    subscriber := &model.Subscriber{
        Email:    body.Email,
        Name:     body.Name,
        IsActive: true,
    }
    if err := c.Repo.Create(subscriber); err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusCreated, subscriber)
}

func (c *SubscriberController) UpdateSubscriber(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondError(w, appErrors.NewValidation("invalid subscriber id"))
        return
    }

    subscriber, err := c.Repo.GetByID(id)
    if err != nil {
        respondError(w, err)
        return
    }
    if subscriber == nil {
        respondError(w, appErrors.NewSubscriberNotFound(id))
        return
    }

    var body subscriberPayload
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondError(w, appErrors.NewValidation("invalid body"))
        return
    }

    // Partial update: absent fields keep their stored value.
    if body.Email != "" {
        if _, err := mail.ParseAddress(body.Email); err != nil {
            respondError(w, appErrors.NewValidation("invalid email address"))
            return
        }
        subscriber.Email = body.Email
    }
    if body.Name != "" {
        subscriber.Name = body.Name
    }
    if body.IsActive != nil {
        subscriber.IsActive = *body.IsActive
    }

    if err := c.Repo.Update(subscriber); err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, subscriber)
}

func (c *SubscriberController) ToggleSubscriber(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondError(w, appErrors.NewValidation("invalid subscriber id"))
        return
    }

    subscriber, err := c.Repo.GetByID(id)
    if err != nil {
        respondError(w, err)
        return
    }
    if subscriber == nil {
        respondError(w, appErrors.NewSubscriberNotFound(id))
        return
    }

    subscriber.IsActive = !subscriber.IsActive
    if err := c.Repo.Update(subscriber); err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, subscriber)
}

func (c *SubscriberController) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondError(w, appErrors.NewValidation("invalid subscriber id"))
        return
    }
    if err := c.Repo.Delete(id); err != nil {
        respondError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// ImportSubscribers bulk-upserts by email. Rows are imported
// independently and joined all-settled: a bad row fails alone.
func (c *SubscriberController) ImportSubscribers(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Subscribers []subscriberPayload `json:"subscribers"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Subscribers == nil {
        respondError(w, appErrors.NewValidation("invalid subscribers array"))
        return
    }

    results := make([]error, len(body.Subscribers))
    var wg sync.WaitGroup
    for i, sub := range body.Subscribers {
        wg.Add(1)
        go func(i int, sub subscriberPayload) {
            defer wg.Done()
            if err := sub.validate(); err != nil {
                results[i] = err
                return
            }
            _, err := c.Repo.UpsertByEmail(sub.Name, sub.Email)
            results[i] = err
        }(i, sub)
    }
    wg.Wait()

    imported, failed := 0, 0
    for _, err := range results {
        if err == nil {
            imported++
        } else {
            failed++
        }
    }

    respondJSON(w, http.StatusOK, map[string]int{
        "imported": imported,
        "failed":   failed,
        "total":    len(body.Subscribers),
    })
}
