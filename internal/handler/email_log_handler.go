// internal/handler/email_log_handler.go
package handler

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/unclebandit/morningpost-backend/internal/repository"
)

// EmailLogHandler serves the delivery-outcome log and its aggregates.
type EmailLogHandler struct {
    Repo repository.EmailLogRepositoryInterface
}

func (h *EmailLogHandler) GetLogsHandler(w http.ResponseWriter, r *http.Request) {
    limit := 100
    if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
        if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
            limit = l
        }
    }

    logs, err := h.Repo.List(limit)
    if err != nil {
        http.Error(w, "failed to fetch email logs: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(logs)
}

func (h *EmailLogHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
    stats, err := h.Repo.Stats()
    if err != nil {
        http.Error(w, "failed to fetch email stats: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(stats)
}
