package queue

import (
    "fmt"
    "log"
    "sync"
    "time"
)

// Topics carried on the delivery-event stream.
const (
    TopicDeliveries = "email_deliveries"
    TopicBatches    = "email_batches"
)

// DeliveryEvent is published once per recipient send attempt.
type DeliveryEvent struct {
    SubscriberID int       `json:"subscriber_id"`
    Email        string    `json:"email"`
    TemplateID   int       `json:"template_id"`
    Subject      string    `json:"subject"`
    Status       string    `json:"status"`
    Error        string    `json:"error,omitempty"`
    SentAt       time.Time `json:"sent_at"`
}

// BatchEvent is published once per completed dispatch batch.
type BatchEvent struct {
    TemplateID  int       `json:"template_id"`
    Sent        int       `json:"sent"`
    Failed      int       `json:"failed"`
    Total       int       `json:"total"`
    CompletedAt time.Time `json:"completed_at"`
}

// Queue interface
type Queue interface {
    Publish(topic string, payload any) error
    Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans payloads out to in-process subscribers. Used when no
// broker is configured and in tests.
type InMemoryQueue struct {
    mu       sync.Mutex
    handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
    return &InMemoryQueue{
        handlers: make(map[string][]func(payload any) error),
    }
}

// Publish delivers the payload to every subscriber of the topic. Topics
// without subscribers drop the payload silently: the event stream is
// best-effort observability, never load-bearing.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
    q.mu.Lock()
    handlers := q.handlers[topic]
    q.mu.Unlock()

    for _, handler := range handlers {
        go func(h func(payload any) error) {
            if err := h(payload); err != nil {
                log.Printf("⚠️ Subscriber for %s failed: %v\n", topic, err)
            }
        }(handler)
    }
    return nil
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
    if handler == nil {
        return fmt.Errorf("nil handler for topic %s", topic)
    }
    q.mu.Lock()
    defer q.mu.Unlock()

    q.handlers[topic] = append(q.handlers[topic], handler)
    return nil
}
