package repository

import (
    "database/sql"

    "github.com/unclebandit/morningpost-backend/internal/model"
)

type ScheduleRepositoryInterface interface {
    GetFirst() (*model.ScheduleConfig, error)
    Create(c *model.ScheduleConfig) error
    Update(c *model.ScheduleConfig) error
}

// ScheduleRepository stores the singleton schedule config. GetFirst
// returns nil, nil when no row exists yet; the scheduler synthesizes a
// default in that case.
type ScheduleRepository struct {
    DB *sql.DB
}

func (r *ScheduleRepository) GetFirst() (*model.ScheduleConfig, error) {
    query := `SELECT id, cron_time, timezone, is_active FROM schedule_configs ORDER BY id LIMIT 1`
    var c model.ScheduleConfig
    err := r.DB.QueryRow(query).Scan(&c.ID, &c.CronTime, &c.Timezone, &c.IsActive)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &c, nil
}

func (r *ScheduleRepository) Create(c *model.ScheduleConfig) error {
    query := `
        INSERT INTO schedule_configs (cron_time, timezone, is_active)
        VALUES ($1, $2, $3)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.CronTime, c.Timezone, c.IsActive).Scan(&c.ID)
}

func (r *ScheduleRepository) Update(c *model.ScheduleConfig) error {
    query := `UPDATE schedule_configs SET cron_time=$1, timezone=$2, is_active=$3 WHERE id=$4`
    _, err := r.DB.Exec(query, c.CronTime, c.Timezone, c.IsActive, c.ID)
    return err
}

var _ ScheduleRepositoryInterface = (*ScheduleRepository)(nil)
