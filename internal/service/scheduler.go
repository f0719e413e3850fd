// internal/service/scheduler.go
package service

import (
    "context"
    "log"
    "sync"
    "time"

    "github.com/robfig/cron/v3"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/model"
    "github.com/unclebandit/morningpost-backend/internal/repository"
)

// Default schedule synthesized when no config row exists: 9 AM daily, UTC.
const (
    defaultCronTime = "0 9 * * *"
    defaultTimezone = "UTC"
)

// BulkSender is the dispatch boundary the scheduler drives on each tick.
type BulkSender interface {
    SendBulk(ctx context.Context, templateID int) (*SendResult, error)
}

// ActiveTemplateReader resolves the template a tick should send. It is
// re-queried on every tick, not captured at Start time.
type ActiveTemplateReader interface {
    GetActive() (*model.EmailTemplate, error)
}

// Scheduler owns the single live recurring trigger. It is either stopped
// or running exactly one cron timer; Start always replaces, never stacks.
// All mutations go through Update so the persisted config and the live
// timer never diverge.
type Scheduler struct {
    ScheduleRepo repository.ScheduleRepositoryInterface
    TemplateRepo ActiveTemplateReader
    Email        BulkSender

    mu       sync.Mutex
    timer    *cron.Cron
    cronTime string
    timezone string
}

// Initialize loads the schedule config, creating the default when the
// table is empty, and starts the timer iff the config is active.
func (s *Scheduler) Initialize() error {
    config, err := s.ScheduleRepo.GetFirst()
    if err != nil {
        return err
    }

    if config == nil {
        config = &model.ScheduleConfig{
            CronTime: defaultCronTime,
            Timezone: defaultTimezone,
            IsActive: true,
        }
        if err := s.ScheduleRepo.Create(config); err != nil {
            return err
        }
        log.Println("📅 Created default schedule config")
    }

    if !config.IsActive {
        log.Println("📅 Scheduler is disabled")
        return nil
    }
    return s.Start(config.CronTime, config.Timezone)
}

// Start validates the expression and timezone, then replaces any running
// timer with a new one. Validation failures leave an existing timer
// running untouched.
func (s *Scheduler) Start(cronTime, timezone string) error {
    if _, err := cron.ParseStandard(cronTime); err != nil {
        log.Println("❌ Invalid cron expression:", cronTime)
        return appErrors.NewScheduleSyntax(cronTime, err.Error())
    }
    loc, err := time.LoadLocation(timezone)
    if err != nil {
        log.Println("❌ Invalid timezone:", timezone)
        return appErrors.NewScheduleSyntax(cronTime, "unknown timezone "+timezone)
    }

    s.mu.Lock()
    defer s.mu.Unlock()

    // Never two live timers: replace is stop-then-start.
    s.stopLocked()

    timer := cron.New(cron.WithLocation(loc))
    if _, err := timer.AddFunc(cronTime, s.tick); err != nil {
        return appErrors.NewScheduleSyntax(cronTime, err.Error())
    }
    timer.Start()

    s.timer = timer
    s.cronTime = cronTime
    s.timezone = timezone
    log.Printf("📅 Scheduler started: %s (%s)\n", cronTime, timezone)
    return nil
}

// Stop cancels the live timer. Idempotent when already stopped.
func (s *Scheduler) Stop() {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.stopLocked()
}

func (s *Scheduler) stopLocked() {
    if s.timer == nil {
        return
    }
    s.timer.Stop()
    s.timer = nil
    s.cronTime = ""
    s.timezone = ""
    log.Println("📅 Scheduler stopped")
}

// Update is the single mutation path for schedule state: it validates,
// persists the singleton config, then brings the live timer in line.
func (s *Scheduler) Update(cronTime, timezone string, isActive bool) (*model.ScheduleConfig, error) {
    if _, err := cron.ParseStandard(cronTime); err != nil {
        return nil, appErrors.NewScheduleSyntax(cronTime, err.Error())
    }
    if _, err := time.LoadLocation(timezone); err != nil {
        return nil, appErrors.NewScheduleSyntax(cronTime, "unknown timezone "+timezone)
    }

    config, err := s.ScheduleRepo.GetFirst()
    if err != nil {
        return nil, err
    }

    if config == nil {
        config = &model.ScheduleConfig{CronTime: cronTime, Timezone: timezone, IsActive: isActive}
        if err := s.ScheduleRepo.Create(config); err != nil {
            return nil, err
        }
    } else {
        config.CronTime = cronTime
        config.Timezone = timezone
        config.IsActive = isActive
        if err := s.ScheduleRepo.Update(config); err != nil {
            return nil, err
        }
    }

    if isActive {
        if err := s.Start(cronTime, timezone); err != nil {
            return nil, err
        }
    } else {
        s.Stop()
    }
    return config, nil
}

// TriggerManual bypasses the timer and dispatches the given template
// directly, whether or not a timer is running.
func (s *Scheduler) TriggerManual(ctx context.Context, templateID int) (*SendResult, error) {
    log.Println("🚀 Manual email send triggered")
    return s.Email.SendBulk(ctx, templateID)
}

// tick runs on every cron fire. The active template is re-resolved each
// time, and any failure is logged and swallowed so the timer keeps
// firing.
func (s *Scheduler) tick() {
    log.Println("⏰ Scheduled email job triggered at", time.Now().UTC().Format(time.RFC3339))

    template, err := s.TemplateRepo.GetActive()
    if err != nil {
        log.Println("❌ Scheduled email job failed:", err)
        return
    }
    if template == nil {
        log.Println("⚠️ No active email template found")
        return
    }

    if _, err := s.Email.SendBulk(context.Background(), template.ID); err != nil {
        log.Println("❌ Scheduled email job failed:", err)
    }
}

// Running reports whether a timer is live, and on which schedule.
func (s *Scheduler) Running() (bool, string, string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.timer != nil, s.cronTime, s.timezone
}
