package queue

import (
    "encoding/json"
    "fmt"
    "log"
    "sync"

    "github.com/streadway/amqp"
)

// AMQPQueue publishes delivery events to RabbitMQ so out-of-process
// consumers (cmd/worker) can tail them. One durable queue per topic.
type AMQPQueue struct {
    conn *amqp.Connection
    ch   *amqp.Channel

    mu       sync.Mutex
    declared map[string]bool
}

func DialAMQP(url string) (*AMQPQueue, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
    }

    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, fmt.Errorf("failed to open a channel: %w", err)
    }

    return &AMQPQueue{
        conn:     conn,
        ch:       ch,
        declared: map[string]bool{},
    }, nil
}

func (q *AMQPQueue) declare(topic string) error {
    q.mu.Lock()
    defer q.mu.Unlock()

    if q.declared[topic] {
        return nil
    }
    _, err := q.ch.QueueDeclare(
        topic,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
    if err != nil {
        return err
    }
    q.declared[topic] = true
    return nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
    if err := q.declare(topic); err != nil {
        return err
    }

    body, err := json.Marshal(payload)
    if err != nil {
        return err
    }

    q.mu.Lock()
    defer q.mu.Unlock()
    return q.ch.Publish(
        "",
        topic,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Body:        body,
        },
    )
}

// Subscribe consumes the topic's queue and hands each raw JSON body to
// the handler. Handler errors nack without requeue: the stream is a
// tail, not a work queue.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
    if err := q.declare(topic); err != nil {
        return err
    }

    msgs, err := q.ch.Consume(
        topic,
        "",
        false, // autoAck = false
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        return err
    }

    go func() {
        for d := range msgs {
            if err := handler(d.Body); err != nil {
                log.Printf("⚠️ Handler for %s failed: %v\n", topic, err)
                d.Nack(false, false)
                continue
            }
            d.Ack(false)
        }
    }()
    return nil
}

func (q *AMQPQueue) Close() {
    q.ch.Close()
    q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
var _ Queue = (*InMemoryQueue)(nil)
