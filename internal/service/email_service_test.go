package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
	"github.com/unclebandit/morningpost-backend/internal/model"
)

// --- Mocks ---

type mockTemplates struct {
	template *model.EmailTemplate
}

func (m *mockTemplates) GetByID(id int) (*model.EmailTemplate, error) {
	if m.template == nil || m.template.ID != id {
		return nil, nil
	}
	return m.template, nil
}

type mockSubscribers struct {
	subs []model.Subscriber
}

func (m *mockSubscribers) ListActive() ([]model.Subscriber, error) {
	return m.subs, nil
}

// mockOutcomes records appended log rows. Guarded because the dispatcher
// writes from multiple goroutines.
type mockOutcomes struct {
	mu      sync.Mutex
	entries []model.EmailLog
	fail    bool
}

func (m *mockOutcomes) Create(l *model.EmailLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("db down")
	}
	m.entries = append(m.entries, *l)
	return nil
}

func (m *mockOutcomes) byEmail() map[int]model.EmailLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[int]model.EmailLog{}
	for _, e := range m.entries {
		out[e.SubscriberID] = e
	}
	return out
}

// mockSender fails for addresses in failFor and records every send.
type mockSender struct {
	mu      sync.Mutex
	failFor map[string]bool
	sends   map[string]string // recipient -> rendered body
	subs    map[string]string // recipient -> rendered subject
}

func (m *mockSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sends == nil {
		m.sends = map[string]string{}
		m.subs = map[string]string{}
	}
	if m.failFor[to] {
		return "", fmt.Errorf("mailbox unavailable: %s", to)
	}
	m.sends[to] = html
	m.subs[to] = subject
	return "msg-" + to, nil
}

func newTestEmailService(tmpl *model.EmailTemplate, subs []model.Subscriber, sender *mockSender, logs *mockOutcomes) *EmailService {
	return &EmailService{
		TemplateRepo:   &mockTemplates{template: tmpl},
		SubscriberRepo: &mockSubscribers{subs: subs},
		LogRepo:        logs,
		Sender:         sender,
		Metals:         &MetalsService{},
		QuoteFunc: func() Quote {
			return Quote{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs", Kind: "quote"}
		},
		Now: func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) },
	}
}

// --- Tests ---

func TestSendBulkAllSettled(t *testing.T) {
	tmpl := &model.EmailTemplate{
		ID:       1,
		Subject:  "Good Morning {{name}}!",
		Body:     "<p>Hi {{name}}</p>{{quote}}",
		IsActive: true,
	}
	subs := []model.Subscriber{
		{ID: 1, Email: "alice@example.com", Name: "Alice", IsActive: true},
		{ID: 2, Email: "bob@example.com", Name: "Bob", IsActive: true},
		{ID: 3, Email: "carol@example.com", Name: "Carol", IsActive: true},
	}
	sender := &mockSender{failFor: map[string]bool{"bob@example.com": true}}
	logs := &mockOutcomes{}
	svc := newTestEmailService(tmpl, subs, sender, logs)

	result, err := svc.SendBulk(context.Background(), 1)
	if err != nil {
		t.Fatalf("SendBulk returned error: %v", err)
	}

	if result.Sent != 2 || result.Failed != 1 || result.Total != 3 {
		t.Errorf("expected 2 sent, 1 failed, 3 total; got %+v", result)
	}
	if result.Sent+result.Failed != result.Total {
		t.Errorf("sent+failed must equal total, got %+v", result)
	}

	byID := logs.byEmail()
	if len(byID) != 3 {
		t.Fatalf("expected one log row per subscriber, got %d", len(byID))
	}
	for _, id := range []int{1, 3} {
		if byID[id].Status != model.StatusSent {
			t.Errorf("subscriber %d: expected status %s, got %s", id, model.StatusSent, byID[id].Status)
		}
	}
	failed := byID[2]
	if failed.Status != model.StatusFailed {
		t.Errorf("expected failed status for bob, got %s", failed.Status)
	}
	if failed.Error == "" {
		t.Error("expected error message recorded on the failed row")
	}
	for id, entry := range byID {
		if entry.TemplateID == nil || *entry.TemplateID != tmpl.ID {
			t.Errorf("subscriber %d: log row not linked to template %d", id, tmpl.ID)
		}
	}
}

func TestSendBulkInactiveTemplate(t *testing.T) {
	tmpl := &model.EmailTemplate{ID: 5, Subject: "s", Body: "b", IsActive: false}
	sender := &mockSender{}
	logs := &mockOutcomes{}
	svc := newTestEmailService(tmpl, []model.Subscriber{{ID: 1, Email: "a@b.c", Name: "A"}}, sender, logs)

	_, err := svc.SendBulk(context.Background(), 5)

	var notFound *appErrors.ErrTemplateNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if notFound.TemplateID != 5 {
		t.Errorf("expected template id 5 in error, got %d", notFound.TemplateID)
	}
	if len(sender.sends) != 0 {
		t.Error("no email may be sent for an inactive template")
	}
	if len(logs.entries) != 0 {
		t.Error("no log row may be written for an inactive template")
	}
}

func TestSendBulkUnknownTemplate(t *testing.T) {
	svc := newTestEmailService(nil, nil, &mockSender{}, &mockOutcomes{})

	_, err := svc.SendBulk(context.Background(), 99)

	var notFound *appErrors.ErrTemplateNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrTemplateNotFound for missing template, got %v", err)
	}
}

func TestSendBulkNoSubscribers(t *testing.T) {
	tmpl := &model.EmailTemplate{ID: 1, Subject: "s", Body: "b", IsActive: true}
	svc := newTestEmailService(tmpl, nil, &mockSender{}, &mockOutcomes{})

	result, err := svc.SendBulk(context.Background(), 1)
	if err != nil {
		t.Fatalf("empty snapshot must not error: %v", err)
	}
	if result.Total != 0 || result.Sent != 0 || result.Failed != 0 {
		t.Errorf("expected zero counts, got %+v", result)
	}
}

func TestSendBulkPersonalizesEachRecipient(t *testing.T) {
	tmpl := &model.EmailTemplate{
		ID:       1,
		Subject:  "Good Morning {{name}}! ✨",
		Body:     "<h1>Hi {{name}}</h1><p>{{date}}</p>{{quote}}{{metal_prices}}<em>{{quote_text}}</em>",
		IsActive: true,
	}
	subs := []model.Subscriber{
		{ID: 1, Email: "alice@example.com", Name: "Alice", IsActive: true},
		{ID: 2, Email: "bob@example.com", Name: "Bob", IsActive: true},
	}
	sender := &mockSender{}
	svc := newTestEmailService(tmpl, subs, sender, &mockOutcomes{})

	if _, err := svc.SendBulk(context.Background(), 1); err != nil {
		t.Fatalf("SendBulk returned error: %v", err)
	}

	for _, sub := range subs {
		body := sender.sends[sub.Email]
		subject := sender.subs[sub.Email]

		if !strings.Contains(subject, sub.Name) {
			t.Errorf("%s: subject not personalized: %q", sub.Email, subject)
		}
		if !strings.Contains(body, "Hi "+sub.Name) {
			t.Errorf("%s: body not personalized: %q", sub.Email, body)
		}
		if !strings.Contains(body, "March 10, 2025") {
			t.Errorf("%s: expected batch date in body", sub.Email)
		}
		if !strings.Contains(body, "Stay hungry, stay foolish.") {
			t.Errorf("%s: expected quote text in body", sub.Email)
		}
		if strings.Contains(body, "{{") {
			t.Errorf("%s: unreplaced known tokens left in body: %q", sub.Email, body)
		}
	}
}

func TestSendBulkLogWriteFailureDoesNotFailDelivery(t *testing.T) {
	tmpl := &model.EmailTemplate{ID: 1, Subject: "s", Body: "b", IsActive: true}
	subs := []model.Subscriber{{ID: 1, Email: "alice@example.com", Name: "Alice"}}
	svc := newTestEmailService(tmpl, subs, &mockSender{}, &mockOutcomes{fail: true})

	result, err := svc.SendBulk(context.Background(), 1)
	if err != nil {
		t.Fatalf("SendBulk returned error: %v", err)
	}
	if result.Sent != 1 || result.Failed != 0 {
		t.Errorf("a log-write failure must not count as a delivery failure, got %+v", result)
	}
}
