// internal/model/schedule_config.go
package model

// ScheduleConfig is a singleton row: at most one exists, and a default is
// created on first access if the table is empty.
type ScheduleConfig struct {
    ID       int    `db:"id" json:"id"`
    CronTime string `db:"cron_time" json:"cron_time"`
    Timezone string `db:"timezone" json:"timezone"`
    IsActive bool   `db:"is_active" json:"is_active"`
}
