package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
	"github.com/pharos-media/pharos/internal/schedule"
)

const scheduleColumns = `
	id, tenant_id, playlist_id, name,
	start_date, end_date, start_time, end_time,
	days_of_week, priority, is_active, created_at, updated_at`

// FindActiveSchedules returns the tenant's active schedules in id order,
// excluding the given schedule id when a candidate is being updated. This is
// the snapshot the conflict detector runs against.
func FindActiveSchedules(tenantID int, excludeID *int) ([]model.Schedule, error) {
	exclude := 0
	if excludeID != nil {
		exclude = *excludeID
	}
	var out []model.Schedule
	q := `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE tenant_id = $1 AND is_active = true AND id <> $2
	 ORDER BY id;`
	if err := DB.Select(&out, q, tenantID, exclude); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("FindActiveSchedules failed")
		return nil, err
	}
	return out, nil
}

func ListSchedules(tenantID int) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE tenant_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func GetSchedule(scheduleID int) (model.Schedule, error) {
	var s model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1;`
	if err := DB.Get(&s, q, scheduleID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("GetSchedule failed")
		return model.Schedule{}, err
	}
	return s, nil
}

// CreateSchedule persists an already validated schedule. The transaction
// takes a per-tenant advisory lock and repeats the conflict decision on the
// rows visible under the lock: the validator's snapshot was read before the
// lock, and a concurrent writer may have admitted an overlapping row since.
func CreateSchedule(s model.Schedule) (model.Schedule, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return model.Schedule{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1);`, int64(s.TenantID)); err != nil {
		log.Error().Err(err).Int("tenant_id", s.TenantID).Msg("CreateSchedule lock failed")
		return model.Schedule{}, err
	}
	if err := recheckConflicts(tx, s); err != nil {
		return model.Schedule{}, err
	}

	var out model.Schedule
	q := `
	INSERT INTO schedules
	  (tenant_id, playlist_id, name, start_date, end_date, start_time, end_time,
	   days_of_week, priority, is_active, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
	RETURNING ` + scheduleColumns + `;`
	if err := tx.Get(&out, q,
		s.TenantID, s.PlaylistID, s.Name, s.StartDate, s.EndDate,
		s.StartTime, s.EndTime, s.DaysOfWeek, s.Priority, s.IsActive,
	); err != nil {
		log.Error().Err(err).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Schedule{}, err
	}
	return out, nil
}

// UpdateSchedule replaces a schedule's fields under the same per-tenant
// advisory lock and locked re-check as CreateSchedule.
func UpdateSchedule(s model.Schedule) (model.Schedule, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return model.Schedule{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1);`, int64(s.TenantID)); err != nil {
		log.Error().Err(err).Int("tenant_id", s.TenantID).Msg("UpdateSchedule lock failed")
		return model.Schedule{}, err
	}
	if err := recheckConflicts(tx, s); err != nil {
		return model.Schedule{}, err
	}

	var out model.Schedule
	q := `
	UPDATE schedules
	   SET playlist_id = $2, name = $3, start_date = $4, end_date = $5,
	       start_time = $6, end_time = $7, days_of_week = $8,
	       priority = $9, is_active = $10, updated_at = now()
	 WHERE id = $1 AND tenant_id = $11
	RETURNING ` + scheduleColumns + `;`
	if err := tx.Get(&out, q,
		s.ID, s.PlaylistID, s.Name, s.StartDate, s.EndDate,
		s.StartTime, s.EndTime, s.DaysOfWeek, s.Priority, s.IsActive, s.TenantID,
	); err != nil {
		log.Error().Err(err).Int("schedule_id", s.ID).Msg("UpdateSchedule failed")
		return model.Schedule{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Schedule{}, err
	}
	return out, nil
}

// recheckConflicts reads the tenant's active schedules inside the locked
// transaction and runs the candidate through the same conflict decision the
// validator used, this time against rows no concurrent writer can change.
// A conflict surfaces as a *schedule.ValidationError for the HTTP layer to
// map to 409.
func recheckConflicts(tx *sqlx.Tx, s model.Schedule) error {
	var existing []model.Schedule
	q := `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE tenant_id = $1 AND is_active = true AND id <> $2
	 ORDER BY id;`
	if err := tx.Select(&existing, q, s.TenantID, s.ID); err != nil {
		log.Error().Err(err).Int("tenant_id", s.TenantID).Msg("locked conflict re-check failed")
		return err
	}
	return schedule.CheckCandidate(s, existing)
}

// DeactivateSchedule soft-deletes a schedule: it drops out of conflict
// checks and resolution but stays on record.
func DeactivateSchedule(scheduleID int) error {
	res, err := DB.Exec(`UPDATE schedules SET is_active = false, updated_at = now() WHERE id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("DeactivateSchedule failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("schedule %d not found", scheduleID)
	}
	return nil
}
