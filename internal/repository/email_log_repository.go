package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/morningpost-backend/internal/model"
)

type EmailLogRepositoryInterface interface {
    Create(l *model.EmailLog) error
    List(limit int) ([]model.EmailLog, error)
    Stats() (map[string]int, error)
}

// EmailLogRepository is the append-only delivery outcome log. Rows are
// never updated or deleted.
type EmailLogRepository struct {
    DB *sql.DB
}

func (r *EmailLogRepository) Create(l *model.EmailLog) error {
    if l.SentAt.IsZero() {
        l.SentAt = time.Now()
    }
    query := `
        INSERT INTO email_logs (subscriber_id, template_id, subject, status, error, sent_at)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
        RETURNING id
    `
    return r.DB.QueryRow(
        query,
        l.SubscriberID,
        l.TemplateID,
        l.Subject,
        l.Status,
        l.Error,
        l.SentAt,
    ).Scan(&l.ID)
}

// List returns the most recent delivery outcomes, newest first.
func (r *EmailLogRepository) List(limit int) ([]model.EmailLog, error) {
    if limit < 1 {
        limit = 100
    }
    query := `
        SELECT id, subscriber_id, template_id, subject, status, COALESCE(error, ''), sent_at
        FROM email_logs
        ORDER BY sent_at DESC
        LIMIT $1
    `
    rows, err := r.DB.Query(query, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    logs := []model.EmailLog{}
    for rows.Next() {
        var l model.EmailLog
        if err := rows.Scan(&l.ID, &l.SubscriberID, &l.TemplateID, &l.Subject, &l.Status, &l.Error, &l.SentAt); err != nil {
            return nil, err
        }
        logs = append(logs, l)
    }
    return logs, rows.Err()
}

func (r *EmailLogRepository) Stats() (map[string]int, error) {
    query := `SELECT status, COUNT(*) FROM email_logs GROUP BY status`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"total": 0, "sent": 0, "failed": 0}
    for rows.Next() {
        var status string
        var count int
        if err := rows.Scan(&status, &count); err != nil {
            return nil, err
        }
        switch status {
        case model.StatusSent:
            stats["sent"] = count
        case model.StatusFailed:
            stats["failed"] = count
        }
        stats["total"] += count
    }
    return stats, rows.Err()
}

var _ EmailLogRepositoryInterface = (*EmailLogRepository)(nil)
