package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/pharos-media/pharos/internal/model"
)

// Repository supplies the consistent snapshot of a tenant's active schedules
// the conflict check runs against. Serializing the snapshot with the
// eventual write is the persistence layer's responsibility.
type Repository interface {
	FindActiveSchedules(tenantID int, excludeID *int) ([]model.Schedule, error)
}

// Validator is the single entry point of the validation engine: it extracts
// the recognized schedule fields from a raw request body, runs every
// structural rule, then checks the candidate against the tenant's active
// schedules.
type Validator struct {
	repo Repository
	now  func() time.Time
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo, now: time.Now}
}

const dateLayout = "2006-01-02"

// ValidateSchedule validates raw schedule fields and returns the normalized
// schedule ready for persistence. Unrecognized keys are ignored. On update
// the schedule's own id goes in excludeID so it never conflicts with its own
// stored state. Structural rules all run before any repository access; the
// conflict check only runs once the candidate is structurally sound. The
// returned error is a *ValidationError for rule failures, or a plain error
// when the repository itself fails.
func (v *Validator) ValidateSchedule(callerTenant int, fields map[string]any, excludeID *int) (model.Schedule, error) {
	verr := &ValidationError{}

	name := extractString(fields, "name", verr)
	if name == nil || *name == "" {
		verr.add("name", CodeRequired, "name is required")
	}

	playlistID := extractInt(fields, "playlist_id", verr)
	if playlistID == nil {
		verr.add("playlist_id", CodeRequired, "playlist_id is required")
	}

	tenantID := callerTenant
	if explicit := extractInt(fields, "tenant_id", verr); explicit != nil {
		tenantID = *explicit
	}

	startDate := extractDate(fields, "start_date", verr)
	endDate := extractDate(fields, "end_date", verr)
	startTime := extractString(fields, "start_time", verr)
	endTime := extractString(fields, "end_time", verr)
	days := extractDays(fields, verr)

	isActive := true
	if b := extractBool(fields, "is_active", verr); b != nil {
		isActive = *b
	}

	priority := 0
	if raw, ok := fields["priority"]; ok {
		p, perrs := checkPriority(raw)
		priority = p
		verr.FieldErrors = append(verr.FieldErrors, perrs...)
	} else {
		verr.add("priority", CodeRequired, "priority is required")
	}

	verr.FieldErrors = append(verr.FieldErrors, checkDuration(startTime, endTime)...)

	endAfterStart := TimeRule{Field: "end_date", AllowEmpty: true, After: "start_date", Inclusive: true}
	verr.FieldErrors = append(verr.FieldErrors, endAfterStart.Check(endDate, startDate, v.now())...)

	if len(verr.FieldErrors) > 0 {
		return model.Schedule{}, verr
	}

	candidate := model.Schedule{
		TenantID:   tenantID,
		PlaylistID: *playlistID,
		Name:       *name,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  startTime,
		EndTime:    endTime,
		DaysOfWeek: pq.Int64Array(days),
		Priority:   priority,
		IsActive:   isActive,
	}
	if excludeID != nil {
		candidate.ID = *excludeID
	}

	// an inactive candidate cannot collide with anything
	if !isActive {
		return candidate, nil
	}

	existing, err := v.repo.FindActiveSchedules(tenantID, excludeID)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("fetching active schedules for tenant %d: %w", tenantID, err)
	}

	if err := CheckCandidate(candidate, existing); err != nil {
		var cerr *ValidationError
		if errors.As(err, &cerr) {
			return model.Schedule{}, cerr
		}
		// structurally valid fields always normalize
		verr.add("schedule", CodeMalformedInput, err.Error())
		return model.Schedule{}, verr
	}

	return candidate, nil
}

func extractString(fields map[string]any, key string, verr *ValidationError) *string {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		verr.add(key, CodeMalformedInput, fmt.Sprintf("%s must be a string, got %v", key, raw))
		return nil
	}
	return &s
}

func extractInt(fields map[string]any, key string, verr *ValidationError) *int {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		n := int(v)
		if float64(n) == v {
			return &n
		}
	case int:
		return &v
	}
	verr.add(key, CodeMalformedInput, fmt.Sprintf("%s must be an integer, got %v", key, raw))
	return nil
}

func extractBool(fields map[string]any, key string, verr *ValidationError) *bool {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		verr.add(key, CodeMalformedInput, fmt.Sprintf("%s must be a boolean, got %v", key, raw))
		return nil
	}
	return &b
}

func extractDate(fields map[string]any, key string, verr *ValidationError) *time.Time {
	s := extractString(fields, key, verr)
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		verr.add(key, CodeMalformedInput, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *s))
		return nil
	}
	return &t
}

func extractDays(fields map[string]any, verr *ValidationError) []int64 {
	raw, ok := fields["days_of_week"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		verr.add("days_of_week", CodeMalformedInput, "days_of_week must be a list of weekdays 0-6")
		return nil
	}
	days := make([]int64, 0, len(list))
	for _, item := range list {
		f, ok := item.(float64)
		if !ok || float64(int64(f)) != f {
			verr.add("days_of_week", CodeMalformedInput, fmt.Sprintf("weekday %v is not an integer", item))
			return nil
		}
		days = append(days, int64(f))
	}
	if _, err := NewDaySet(days); err != nil {
		verr.add("days_of_week", CodeMalformedInput, err.Error())
		return nil
	}
	return days
}
