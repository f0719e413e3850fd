// internal/model/subscriber.go
package model

import "time"

type Subscriber struct {
    ID           int       `db:"id" json:"id"`
    Email        string    `db:"email" json:"email"`
    Name         string    `db:"name" json:"name"`
    IsActive     bool      `db:"is_active" json:"is_active"`
    SubscribedAt time.Time `db:"subscribed_at" json:"subscribed_at"`
}
