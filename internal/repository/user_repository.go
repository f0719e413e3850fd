package repository

import (
    "database/sql"

    "github.com/unclebandit/morningpost-backend/internal/model"
)

type UserRepositoryInterface interface {
    GetByID(id int) (*model.User, error)
    GetByEmail(email string) (*model.User, error)
    Create(u *model.User) error
    LinkGoogleID(id int, googleID string) error
}

// UserRepository stores operator accounts created through Google sign-in.
type UserRepository struct {
    DB *sql.DB
}

func scanUser(row *sql.Row) (*model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    return &u, nil
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
    query := `SELECT id, email, name, COALESCE(google_id, '') FROM users WHERE id=$1`
    return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
    query := `SELECT id, email, name, COALESCE(google_id, '') FROM users WHERE email=$1`
    return scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepository) Create(u *model.User) error {
    query := `
        INSERT INTO users (email, name, google_id)
        VALUES ($1, $2, NULLIF($3, ''))
        RETURNING id
    `
    return r.DB.QueryRow(query, u.Email, u.Name, u.GoogleID).Scan(&u.ID)
}

func (r *UserRepository) LinkGoogleID(id int, googleID string) error {
    _, err := r.DB.Exec(`UPDATE users SET google_id=$1 WHERE id=$2`, googleID, id)
    return err
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
