// internal/service/email_service.go
package service

import (
    "context"
    "log"
    "sync"
    "time"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/model"
    "github.com/unclebandit/morningpost-backend/internal/queue"
)

// Sender is the delivery boundary: one email in, one provider message id
// or one error out.
type Sender interface {
    Send(ctx context.Context, to, subject, html string) (string, error)
}

// Narrow repository views: the dispatcher only ever reads templates and
// the active-subscriber snapshot, and appends outcome rows.
type TemplateReader interface {
    GetByID(id int) (*model.EmailTemplate, error)
}

type SubscriberReader interface {
    ListActive() ([]model.Subscriber, error)
}

type OutcomeWriter interface {
    Create(l *model.EmailLog) error
}

type EmailService struct {
    TemplateRepo   TemplateReader
    SubscriberRepo SubscriberReader
    LogRepo        OutcomeWriter
    Sender         Sender
    Metals         *MetalsService
    Events         queue.Queue

    // QuoteFunc and Now are swappable in tests; nil means the real thing.
    QuoteFunc func() Quote
    Now       func() time.Time
}

// Result struct for SendBulk
type SendResult struct {
    Sent   int `json:"sent"`
    Failed int `json:"failed"`
    Total  int `json:"total"`
}

func (s *EmailService) now() time.Time {
    if s.Now != nil {
        return s.Now()
    }
    return time.Now()
}

func (s *EmailService) randomQuote() Quote {
    if s.QuoteFunc != nil {
        return s.QuoteFunc()
    }
    return RandomQuote()
}

// SendBulk sends the template to every active subscriber. Shared inputs
// (template, subscriber snapshot, date, metal prices) are resolved once;
// per-recipient sends then run concurrently and are joined all-settled:
// one recipient failing never aborts or affects another. Every
// subscriber in the snapshot produces exactly one terminal outcome, so
// Sent + Failed == Total always holds.
func (s *EmailService) SendBulk(ctx context.Context, templateID int) (*SendResult, error) {
    template, err := s.TemplateRepo.GetByID(templateID)
    if err != nil {
        return nil, err
    }
    if template == nil || !template.IsActive {
        return nil, appErrors.NewTemplateNotFound(templateID)
    }

    subscribers, err := s.SubscriberRepo.ListActive()
    if err != nil {
        return nil, err
    }

    log.Printf("📧 Sending emails to %d subscribers...\n", len(subscribers))

    // One price snapshot per batch: the external API is rate limited,
    // and every recipient of a batch sees the same numbers.
    prices := s.Metals.FetchPrices()
    pricesHTML := MetalPricesHTML(prices)
    date := s.now().Format("January 2, 2006")

    results := make([]error, len(subscribers))
    var wg sync.WaitGroup
    for i, sub := range subscribers {
        wg.Add(1)
        go func(i int, sub model.Subscriber) {
            defer wg.Done()
            results[i] = s.sendOne(ctx, template, sub, date, prices, pricesHTML)
        }(i, sub)
    }
    wg.Wait()

    result := &SendResult{Total: len(subscribers)}
    for _, err := range results {
        if err == nil {
            result.Sent++
        } else {
            result.Failed++
        }
    }

    log.Printf("📊 Email batch complete: %d sent, %d failed\n", result.Sent, result.Failed)

    s.publish(queue.TopicBatches, queue.BatchEvent{
        TemplateID:  template.ID,
        Sent:        result.Sent,
        Failed:      result.Failed,
        Total:       result.Total,
        CompletedAt: s.now(),
    })

    return result, nil
}

// sendOne renders, sends and logs one recipient's email. The returned
// error is the delivery outcome; log-write and event-publish failures
// are swallowed here so they never leak past the recipient boundary.
func (s *EmailService) sendOne(ctx context.Context, template *model.EmailTemplate, sub model.Subscriber, date string, prices *MetalPrices, pricesHTML string) error {
    subject := RenderSubject(template.Subject, sub.Name)
    body := s.personalize(template.Body, sub, date, prices, pricesHTML)

    _, sendErr := s.Sender.Send(ctx, sub.Email, subject, body)

    entry := &model.EmailLog{
        SubscriberID: sub.ID,
        TemplateID:   &template.ID,
        Subject:      subject,
        Status:       model.StatusSent,
        SentAt:       s.now(),
    }
    if sendErr != nil {
        entry.Status = model.StatusFailed
        entry.Error = sendErr.Error()
        log.Printf("❌ Failed to send email to %s: %v\n", sub.Email, sendErr)
    } else {
        log.Printf("✅ Email sent to %s\n", sub.Email)
    }

    if err := s.LogRepo.Create(entry); err != nil {
        log.Println("⚠️ Failed to write email log:", err)
    }

    s.publish(queue.TopicDeliveries, queue.DeliveryEvent{
        SubscriberID: sub.ID,
        Email:        sub.Email,
        TemplateID:   template.ID,
        Subject:      subject,
        Status:       entry.Status,
        Error:        entry.Error,
        SentAt:       entry.SentAt,
    })

    return sendErr
}

// personalize fills the full placeholder set. The quote is drawn fresh
// per recipient; date and prices are the shared batch snapshot.
func (s *EmailService) personalize(body string, sub model.Subscriber, date string, prices *MetalPrices, pricesHTML string) string {
    quote := s.randomQuote()

    return RenderTemplate(body, map[string]string{
        "name":             sub.Name,
        "email":            sub.Email,
        "date":             date,
        "quote":            QuoteHTML(quote),
        "quote_text":       quote.Text,
        "quote_author":     QuoteAuthor(quote),
        "metal_prices":     pricesHTML,
        "gold_price":       FormatPrice(prices.Gold.INR*10, "INR"),
        "silver_price":     FormatPrice(prices.Silver.INR*1000, "INR"),
        "gold_price_usd":   FormatPrice(prices.Gold.USD*10, "USD"),
        "silver_price_usd": FormatPrice(prices.Silver.USD*1000, "USD"),
    })
}

func (s *EmailService) publish(topic string, payload any) {
    if s.Events == nil {
        return
    }
    if err := s.Events.Publish(topic, payload); err != nil {
        log.Printf("⚠️ Failed to publish %s event: %v\n", topic, err)
    }
}
