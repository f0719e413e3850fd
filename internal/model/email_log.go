// internal/model/email_log.go
package model

import "time"

// Email delivery statuses. One EmailLog row is appended per delivery
// attempt and never updated afterwards.
const (
    StatusSent   = "SENT"
    StatusFailed = "FAILED"
)

type EmailLog struct {
    ID           int       `db:"id" json:"id"`
    SubscriberID int       `db:"subscriber_id" json:"subscriber_id"`
    TemplateID   *int      `db:"template_id" json:"template_id,omitempty"`
    Subject      string    `db:"subject" json:"subject"`
    Status       string    `db:"status" json:"status"`
    Error        string    `db:"error,omitempty" json:"error,omitempty"`
    SentAt       time.Time `db:"sent_at" json:"sent_at"`
}
