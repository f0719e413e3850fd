// internal/controller/schedule_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/repository"
    "github.com/unclebandit/morningpost-backend/internal/service"
)

type ScheduleController struct {
    Scheduler    *service.Scheduler
    ScheduleRepo repository.ScheduleRepositoryInterface
}

func (c *ScheduleController) GetSchedule(w http.ResponseWriter, r *http.Request) {
    config, err := c.ScheduleRepo.GetFirst()
    if err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, config)
}

func (c *ScheduleController) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
    var body struct {
        CronTime string `json:"cron_time"`
        Timezone string `json:"timezone"`
        IsActive bool   `json:"is_active"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondError(w, appErrors.NewValidation("invalid body"))
        return
    }
    if body.CronTime == "" || body.Timezone == "" {
        respondError(w, appErrors.NewValidation("cron_time and timezone are required"))
        return
    }

    config, err := c.Scheduler.Update(body.CronTime, body.Timezone, body.IsActive)
    if err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, config)
}

// TriggerSend runs a manual batch for an explicit template id,
// independent of whether the timer is running.
func (c *ScheduleController) TriggerSend(w http.ResponseWriter, r *http.Request) {
    var body struct {
        TemplateID int `json:"template_id"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TemplateID == 0 {
        respondError(w, appErrors.NewValidation("template_id is required"))
        return
    }

    result, err := c.Scheduler.TriggerManual(r.Context(), body.TemplateID)
    if err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, result)
}
