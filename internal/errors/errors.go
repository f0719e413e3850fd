// internal/errors/errors.go
package appErrors

import "fmt"

// ErrTemplateNotFound is returned when a template is absent or not active.
type ErrTemplateNotFound struct {
    TemplateID int
}

func (e *ErrTemplateNotFound) Error() string {
    return fmt.Sprintf("template with ID %d not found or inactive", e.TemplateID)
}

// Helper constructor
func NewTemplateNotFound(id int) error {
    return &ErrTemplateNotFound{TemplateID: id}
}

// ErrSubscriberNotFound is a sentinel error
type ErrSubscriberNotFound struct {
    SubscriberID int
}

func (e *ErrSubscriberNotFound) Error() string {
    return fmt.Sprintf("subscriber with ID %d not found", e.SubscriberID)
}

func NewSubscriberNotFound(id int) error {
    return &ErrSubscriberNotFound{SubscriberID: id}
}

// ErrValidation marks malformed input to a public operation. The operation
// has no side effect when this is returned.
type ErrValidation struct {
    Msg string
}

func (e *ErrValidation) Error() string {
    return e.Msg
}

func NewValidation(msg string) error {
    return &ErrValidation{Msg: msg}
}

// ErrScheduleSyntax marks an invalid cron expression or timezone. It is
// returned before any schedule state is mutated; a running timer is left
// untouched.
type ErrScheduleSyntax struct {
    Expr   string
    Reason string
}

func (e *ErrScheduleSyntax) Error() string {
    return fmt.Sprintf("invalid schedule %q: %s", e.Expr, e.Reason)
}

func NewScheduleSyntax(expr, reason string) error {
    return &ErrScheduleSyntax{Expr: expr, Reason: reason}
}
