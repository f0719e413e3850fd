package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/model"
)

type TemplateRepositoryInterface interface {
    ListAll() ([]model.EmailTemplate, error)
    GetByID(id int) (*model.EmailTemplate, error)
    GetActive() (*model.EmailTemplate, error)
    Create(t *model.EmailTemplate) error
    Update(t *model.EmailTemplate) error
    Delete(id int) error
}

type TemplateRepository struct {
    DB *sql.DB
}

const templateColumns = `id, name, subject, body, is_active, created_at`

func (r *TemplateRepository) GetByID(id int) (*model.EmailTemplate, error) {
    query := `SELECT ` + templateColumns + ` FROM email_templates WHERE id=$1`
    var t model.EmailTemplate
    err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.IsActive, &t.CreatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewTemplateNotFound(id)
        }
        return nil, err
    }
    return &t, nil
}

// GetActive resolves the template a scheduled tick should send. Nothing
// stops an operator flagging several templates active at once, so the
// most recently created one wins rather than leaving the pick to store
// ordering. Returns nil, nil when no template is active.
func (r *TemplateRepository) GetActive() (*model.EmailTemplate, error) {
    query := `
        SELECT ` + templateColumns + `
        FROM email_templates
        WHERE is_active = TRUE
        ORDER BY created_at DESC
        LIMIT 1
    `
    var t model.EmailTemplate
    err := r.DB.QueryRow(query).Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.IsActive, &t.CreatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &t, nil
}

func (r *TemplateRepository) ListAll() ([]model.EmailTemplate, error) {
    query := `SELECT ` + templateColumns + ` FROM email_templates ORDER BY created_at DESC`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    templates := []model.EmailTemplate{}
    for rows.Next() {
        var t model.EmailTemplate
        if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.IsActive, &t.CreatedAt); err != nil {
            return nil, err
        }
        templates = append(templates, t)
    }
    return templates, rows.Err()
}

func (r *TemplateRepository) Create(t *model.EmailTemplate) error {
    if t.CreatedAt.IsZero() {
        t.CreatedAt = time.Now()
    }
    query := `
        INSERT INTO email_templates (name, subject, body, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
    return r.DB.QueryRow(query, t.Name, t.Subject, t.Body, t.IsActive, t.CreatedAt).Scan(&t.ID)
}

func (r *TemplateRepository) Update(t *model.EmailTemplate) error {
    query := `
        UPDATE email_templates
        SET name=$1, subject=$2, body=$3, is_active=$4
        WHERE id=$5
    `
    _, err := r.DB.Exec(query, t.Name, t.Subject, t.Body, t.IsActive, t.ID)
    return err
}

func (r *TemplateRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM email_templates WHERE id=$1`, id)
    return err
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
