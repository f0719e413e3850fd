// internal/controller/respond.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

// respondError maps the typed errors to HTTP statuses: validation and
// schedule-syntax problems are the client's fault, missing entities are
// 404, everything else is a 500.
func respondError(w http.ResponseWriter, err error) {
    status := http.StatusInternalServerError

    var notFoundTemplate *appErrors.ErrTemplateNotFound
    var notFoundSubscriber *appErrors.ErrSubscriberNotFound
    var validation *appErrors.ErrValidation
    var schedule *appErrors.ErrScheduleSyntax

    switch {
    case errors.As(err, &notFoundTemplate), errors.As(err, &notFoundSubscriber):
        status = http.StatusNotFound
    case errors.As(err, &validation), errors.As(err, &schedule):
        status = http.StatusBadRequest
    }

    respondJSON(w, status, map[string]string{"error": err.Error()})
}
