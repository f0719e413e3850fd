package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/morningpost-backend/internal/model"
)

// SubscriberRepositoryInterface defines methods used by services
type SubscriberRepositoryInterface interface {
    ListAll() ([]model.Subscriber, error)
    ListActive() ([]model.Subscriber, error)
    GetByID(id int) (*model.Subscriber, error)
    GetByEmail(email string) (*model.Subscriber, error)
    Create(s *model.Subscriber) error
    Update(s *model.Subscriber) error
    Delete(id int) error
    UpsertByEmail(name, email string) (*model.Subscriber, error)
    Stats() (map[string]int, error)
}

// SubscriberRepository is the concrete implementation
type SubscriberRepository struct {
    DB *sql.DB
}

const subscriberColumns = `id, email, name, is_active, subscribed_at`

func scanSubscriber(row *sql.Row) (*model.Subscriber, error) {
    var s model.Subscriber
    err := row.Scan(&s.ID, &s.Email, &s.Name, &s.IsActive, &s.SubscribedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    return &s, nil
}

func (r *SubscriberRepository) GetByID(id int) (*model.Subscriber, error) {
    query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id=$1`
    return scanSubscriber(r.DB.QueryRow(query, id))
}

func (r *SubscriberRepository) GetByEmail(email string) (*model.Subscriber, error) {
    query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email=$1`
    return scanSubscriber(r.DB.QueryRow(query, email))
}

func (r *SubscriberRepository) listWhere(where string) ([]model.Subscriber, error) {
    query := `SELECT ` + subscriberColumns + ` FROM subscribers ` + where
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    subscribers := []model.Subscriber{}
    for rows.Next() {
        var s model.Subscriber
        if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.IsActive, &s.SubscribedAt); err != nil {
            return nil, err
        }
        subscribers = append(subscribers, s)
    }
    return subscribers, rows.Err()
}

// ListAll returns every subscriber, newest first.
func (r *SubscriberRepository) ListAll() ([]model.Subscriber, error) {
    return r.listWhere(`ORDER BY subscribed_at DESC`)
}

// ListActive returns the active snapshot used for a send batch.
func (r *SubscriberRepository) ListActive() ([]model.Subscriber, error) {
    return r.listWhere(`WHERE is_active = TRUE ORDER BY subscribed_at DESC`)
}

func (r *SubscriberRepository) Create(s *model.Subscriber) error {
    if s.SubscribedAt.IsZero() {
        s.SubscribedAt = time.Now()
    }
    query := `
        INSERT INTO subscribers (email, name, is_active, subscribed_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
    return r.DB.QueryRow(query, s.Email, s.Name, s.IsActive, s.SubscribedAt).Scan(&s.ID)
}

func (r *SubscriberRepository) Update(s *model.Subscriber) error {
    query := `
        UPDATE subscribers
        SET email=$1, name=$2, is_active=$3
        WHERE id=$4
    `
    _, err := r.DB.Exec(query, s.Email, s.Name, s.IsActive, s.ID)
    return err
}

func (r *SubscriberRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM subscribers WHERE id=$1`, id)
    return err
}

// UpsertByEmail inserts a subscriber or, when the email already exists,
// updates the stored name. Used by bulk import.
func (r *SubscriberRepository) UpsertByEmail(name, email string) (*model.Subscriber, error) {
    query := `
        INSERT INTO subscribers (email, name, is_active, subscribed_at)
        VALUES ($1, $2, TRUE, NOW())
        ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
        RETURNING ` + subscriberColumns
    return scanSubscriber(r.DB.QueryRow(query, email, name))
}

func (r *SubscriberRepository) Stats() (map[string]int, error) {
    query := `SELECT is_active, COUNT(*) FROM subscribers GROUP BY is_active`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"total": 0, "active": 0, "inactive": 0}
    for rows.Next() {
        var active bool
        var count int
        if err := rows.Scan(&active, &count); err != nil {
            return nil, err
        }
        if active {
            stats["active"] = count
        } else {
            stats["inactive"] = count
        }
        stats["total"] += count
    }
    return stats, rows.Err()
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
