package model

import (
	"time"

	"github.com/lib/pq"
)

// Schedule activates a playlist for a tenant's screens on a recurring basis.
// Nil date bounds mean the schedule is unbounded on that side, nil times mean
// it runs all day, and an empty days_of_week set means it recurs every day.
type Schedule struct {
	ID         int           `db:"id" json:"id"`
	TenantID   int           `db:"tenant_id" json:"tenant_id"`
	PlaylistID int           `db:"playlist_id" json:"playlist_id"`
	Name       string        `db:"name" json:"name"`
	StartDate  *time.Time    `db:"start_date" json:"start_date,omitempty"`
	EndDate    *time.Time    `db:"end_date" json:"end_date,omitempty"`
	StartTime  *string       `db:"start_time" json:"start_time,omitempty"` // "HH:MM"
	EndTime    *string       `db:"end_time" json:"end_time,omitempty"`     // "HH:MM"; before StartTime = wraps past midnight
	DaysOfWeek pq.Int64Array `db:"days_of_week" json:"days_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	Priority   int           `db:"priority" json:"priority"`
	IsActive   bool          `db:"is_active" json:"is_active"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}
