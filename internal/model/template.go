// internal/model/template.go
package model

import "time"

type EmailTemplate struct {
    ID        int       `db:"id" json:"id"`
    Name      string    `db:"name" json:"name"`
    Subject   string    `db:"subject" json:"subject"`
    Body      string    `db:"body" json:"body"`
    IsActive  bool      `db:"is_active" json:"is_active"`
    CreatedAt time.Time `db:"created_at" json:"created_at"`
}
