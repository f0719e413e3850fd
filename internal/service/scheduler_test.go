package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
	"github.com/unclebandit/morningpost-backend/internal/model"
)

// --- Mocks ---

// scheduleStore is an in-memory singleton schedule config.
type scheduleStore struct {
	config *model.ScheduleConfig
}

func (s *scheduleStore) GetFirst() (*model.ScheduleConfig, error) {
	return s.config, nil
}

func (s *scheduleStore) Create(c *model.ScheduleConfig) error {
	c.ID = 1
	s.config = c
	return nil
}

func (s *scheduleStore) Update(c *model.ScheduleConfig) error {
	s.config = c
	return nil
}

type activeTemplateStub struct {
	template *model.EmailTemplate
	err      error
}

func (s *activeTemplateStub) GetActive() (*model.EmailTemplate, error) {
	return s.template, s.err
}

// bulkRecorder records every dispatch instead of sending anything.
type bulkRecorder struct {
	mu         sync.Mutex
	dispatched []int
	err        error
}

func (b *bulkRecorder) SendBulk(ctx context.Context, templateID int) (*SendResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatched = append(b.dispatched, templateID)
	if b.err != nil {
		return nil, b.err
	}
	return &SendResult{Sent: 1, Total: 1}, nil
}

func (b *bulkRecorder) calls() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.dispatched...)
}

func newTestScheduler(store *scheduleStore, templates *activeTemplateStub, email *bulkRecorder) *Scheduler {
	return &Scheduler{ScheduleRepo: store, TemplateRepo: templates, Email: email}
}

// --- Tests ---

func TestInitializeCreatesDefaultConfig(t *testing.T) {
	store := &scheduleStore{}
	s := newTestScheduler(store, &activeTemplateStub{}, &bulkRecorder{})
	defer s.Stop()

	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if store.config == nil {
		t.Fatal("expected a default config to be persisted")
	}
	if store.config.CronTime != "0 9 * * *" || store.config.Timezone != "UTC" || !store.config.IsActive {
		t.Errorf("unexpected default config: %+v", store.config)
	}

	running, cronTime, timezone := s.Running()
	if !running {
		t.Fatal("expected the timer to be running after Initialize")
	}
	if cronTime != "0 9 * * *" || timezone != "UTC" {
		t.Errorf("timer running on %q (%s), want default schedule", cronTime, timezone)
	}
}

func TestInitializeDisabledConfig(t *testing.T) {
	store := &scheduleStore{config: &model.ScheduleConfig{ID: 1, CronTime: "0 9 * * *", Timezone: "UTC", IsActive: false}}
	s := newTestScheduler(store, &activeTemplateStub{}, &bulkRecorder{})

	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if running, _, _ := s.Running(); running {
		t.Error("timer must stay stopped for an inactive config")
	}
}

func TestUpdateDeactivateStopsTimer(t *testing.T) {
	store := &scheduleStore{}
	s := newTestScheduler(store, &activeTemplateStub{}, &bulkRecorder{})
	defer s.Stop()

	if _, err := s.Update("0 9 * * *", "UTC", true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if running, _, _ := s.Running(); !running {
		t.Fatal("expected a running timer after activating")
	}

	config, err := s.Update("0 9 * * *", "UTC", false)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if config.IsActive {
		t.Error("persisted config must be inactive")
	}
	if running, _, _ := s.Running(); running {
		t.Error("timer must stop when the schedule is deactivated")
	}
	if store.config.IsActive {
		t.Error("store must record the schedule as inactive")
	}
}

func TestUpdateReplacesTimer(t *testing.T) {
	store := &scheduleStore{}
	s := newTestScheduler(store, &activeTemplateStub{}, &bulkRecorder{})
	defer s.Stop()

	if _, err := s.Update("0 9 * * *", "UTC", true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := s.Update("30 6 * * *", "Asia/Kolkata", true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	running, cronTime, timezone := s.Running()
	if !running {
		t.Fatal("expected the replacement timer to be running")
	}
	if cronTime != "30 6 * * *" || timezone != "Asia/Kolkata" {
		t.Errorf("timer on %q (%s), want the replacement schedule", cronTime, timezone)
	}
	if store.config.CronTime != "30 6 * * *" {
		t.Errorf("store holds %q, want the replacement expression", store.config.CronTime)
	}
}

func TestUpdateInvalidExpressionLeavesTimerUntouched(t *testing.T) {
	store := &scheduleStore{}
	s := newTestScheduler(store, &activeTemplateStub{}, &bulkRecorder{})
	defer s.Stop()

	if _, err := s.Update("0 9 * * *", "UTC", true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	_, err := s.Update("not a cron line", "UTC", true)
	var syntaxErr *appErrors.ErrScheduleSyntax
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected ErrScheduleSyntax, got %v", err)
	}

	running, cronTime, _ := s.Running()
	if !running || cronTime != "0 9 * * *" {
		t.Errorf("a rejected update must leave the running timer untouched, got running=%v cron=%q", running, cronTime)
	}
	if store.config.CronTime != "0 9 * * *" {
		t.Errorf("a rejected update must not persist, store holds %q", store.config.CronTime)
	}
}

func TestUpdateInvalidTimezone(t *testing.T) {
	s := newTestScheduler(&scheduleStore{}, &activeTemplateStub{}, &bulkRecorder{})

	_, err := s.Update("0 9 * * *", "Mars/Olympus_Mons", true)
	var syntaxErr *appErrors.ErrScheduleSyntax
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected ErrScheduleSyntax for a bad timezone, got %v", err)
	}
	if running, _, _ := s.Running(); running {
		t.Error("no timer may start on a rejected update")
	}
}

func TestStopIdempotent(t *testing.T) {
	s := newTestScheduler(&scheduleStore{}, &activeTemplateStub{}, &bulkRecorder{})
	s.Stop()
	s.Stop()
	if running, _, _ := s.Running(); running {
		t.Error("expected the scheduler to stay stopped")
	}
}

func TestTriggerManual(t *testing.T) {
	email := &bulkRecorder{}
	s := newTestScheduler(&scheduleStore{}, &activeTemplateStub{}, email)

	result, err := s.TriggerManual(context.Background(), 7)
	if err != nil {
		t.Fatalf("TriggerManual failed: %v", err)
	}
	if result.Sent != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if calls := email.calls(); len(calls) != 1 || calls[0] != 7 {
		t.Errorf("expected one dispatch of template 7, got %v", calls)
	}
}

func TestTickDispatchesActiveTemplate(t *testing.T) {
	email := &bulkRecorder{}
	templates := &activeTemplateStub{template: &model.EmailTemplate{ID: 3, IsActive: true}}
	s := newTestScheduler(&scheduleStore{}, templates, email)

	s.tick()

	if calls := email.calls(); len(calls) != 1 || calls[0] != 3 {
		t.Errorf("expected tick to dispatch template 3, got %v", calls)
	}
}

func TestTickSkipsWithoutActiveTemplate(t *testing.T) {
	email := &bulkRecorder{}
	s := newTestScheduler(&scheduleStore{}, &activeTemplateStub{}, email)

	s.tick()

	if calls := email.calls(); len(calls) != 0 {
		t.Errorf("tick must not dispatch without an active template, got %v", calls)
	}
}

func TestTickSurvivesDispatchError(t *testing.T) {
	email := &bulkRecorder{err: errors.New("smtp storm")}
	templates := &activeTemplateStub{template: &model.EmailTemplate{ID: 3, IsActive: true}}
	s := newTestScheduler(&scheduleStore{}, templates, email)

	// Must not panic; the error is logged and swallowed.
	s.tick()
	s.tick()

	if calls := email.calls(); len(calls) != 2 {
		t.Errorf("expected both ticks to attempt dispatch, got %v", calls)
	}
}
