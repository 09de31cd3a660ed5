package schedule

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pharos-media/pharos/internal/model"
)

type fakeRepo struct {
	schedules []model.Schedule
	err       error

	lastTenant  int
	lastExclude *int
}

func (f *fakeRepo) FindActiveSchedules(tenantID int, excludeID *int) ([]model.Schedule, error) {
	f.lastTenant = tenantID
	f.lastExclude = excludeID
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Schedule
	for _, s := range f.schedules {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func validFields() map[string]any {
	return map[string]any{
		"name":        "lobby loop",
		"playlist_id": float64(4),
		"start_time":  "09:00",
		"end_time":    "17:00",
		"priority":    float64(5),
	}
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return verr
}

func hasCode(verr *ValidationError, field, code string) bool {
	for _, fe := range verr.FieldErrors {
		if fe.Field == field && fe.Code == code {
			return true
		}
	}
	return false
}

func TestValidateSchedule_Valid(t *testing.T) {
	repo := &fakeRepo{}
	v := NewValidator(repo)

	s, err := v.ValidateSchedule(7, validFields(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TenantID != 7 {
		t.Errorf("tenant should default to the caller's, got %d", s.TenantID)
	}
	if s.PlaylistID != 4 || s.Name != "lobby loop" || s.Priority != 5 {
		t.Errorf("unexpected normalized schedule: %+v", s)
	}
	if !s.IsActive {
		t.Error("is_active should default to true")
	}
	if repo.lastTenant != 7 {
		t.Errorf("conflict snapshot fetched for tenant %d, want 7", repo.lastTenant)
	}
}

func TestValidateSchedule_AggregatesAllViolations(t *testing.T) {
	v := NewValidator(&fakeRepo{})

	fields := map[string]any{
		"start_time": "08:00",
		"end_time":   "08:04",
		"priority":   "abc",
		"start_date": "2026-09-10",
		"end_date":   "2026-09-01",
	}
	_, err := v.ValidateSchedule(1, fields, nil)
	verr := asValidationError(t, err)

	for _, want := range []struct{ field, code string }{
		{"name", CodeRequired},
		{"playlist_id", CodeRequired},
		{"end_time", CodeDurationTooShort},
		{"priority", CodePriorityOutOfRange},
		{"end_date", CodeInvalidOrdering},
	} {
		if !hasCode(verr, want.field, want.code) {
			t.Errorf("missing %s error on %s in %v", want.code, want.field, verr.FieldErrors)
		}
	}
	if verr.HasConflict() {
		t.Error("structural failure must not report a conflict")
	}
}

func TestValidateSchedule_UnknownKeysIgnored(t *testing.T) {
	v := NewValidator(&fakeRepo{})
	fields := validFields()
	fields["colour"] = "teal"
	fields["nested"] = map[string]any{"x": 1}

	if _, err := v.ValidateSchedule(1, fields, nil); err != nil {
		t.Fatalf("unknown keys should be ignored: %v", err)
	}
}

func TestValidateSchedule_Conflict(t *testing.T) {
	repo := &fakeRepo{schedules: []model.Schedule{
		{ID: 11, TenantID: 1, Name: "breakfast promo", StartTime: strPtr("06:00"), EndTime: strPtr("10:00"), Priority: 3, IsActive: true},
		{ID: 12, TenantID: 1, Name: "evening promo", StartTime: strPtr("18:00"), EndTime: strPtr("22:00"), Priority: 3, IsActive: true},
	}}
	v := NewValidator(repo)

	fields := validFields()
	fields["start_time"] = "09:00"
	fields["end_time"] = "11:00"

	_, err := v.ValidateSchedule(1, fields, nil)
	verr := asValidationError(t, err)
	if !verr.HasConflict() {
		t.Fatalf("expected a conflict, got %v", verr.FieldErrors)
	}
	if len(verr.ConflictIDs) != 1 || verr.ConflictIDs[0] != 11 {
		t.Errorf("conflict ids = %v, want [11]", verr.ConflictIDs)
	}
}

func TestValidateSchedule_SelfExclusionOnUpdate(t *testing.T) {
	repo := &fakeRepo{schedules: []model.Schedule{
		{ID: 11, TenantID: 1, Name: "breakfast promo", StartTime: strPtr("06:00"), EndTime: strPtr("10:00"), Priority: 3, IsActive: true},
	}}
	v := NewValidator(repo)

	fields := validFields()
	fields["start_time"] = "06:00"
	fields["end_time"] = "10:00"

	id := 11
	s, err := v.ValidateSchedule(1, fields, &id)
	if err != nil {
		t.Fatalf("updating a schedule over itself must not self-conflict: %v", err)
	}
	if s.ID != 11 {
		t.Errorf("normalized schedule keeps its id, got %d", s.ID)
	}
	if repo.lastExclude == nil || *repo.lastExclude != 11 {
		t.Errorf("exclude id not passed through: %v", repo.lastExclude)
	}
}

func TestValidateSchedule_InactiveSkipsConflictCheck(t *testing.T) {
	repo := &fakeRepo{err: errors.New("repository should not be called")}
	v := NewValidator(repo)

	fields := validFields()
	fields["is_active"] = false

	if _, err := v.ValidateSchedule(1, fields, nil); err != nil {
		t.Fatalf("inactive candidate needs no conflict check: %v", err)
	}
}

func TestValidateSchedule_StructuralFailureSkipsRepository(t *testing.T) {
	repo := &fakeRepo{err: errors.New("repository should not be called")}
	v := NewValidator(repo)

	fields := validFields()
	fields["priority"] = float64(99)

	_, err := v.ValidateSchedule(1, fields, nil)
	verr := asValidationError(t, err)
	if !hasCode(verr, "priority", CodePriorityOutOfRange) {
		t.Fatalf("expected priority failure, got %v", verr.FieldErrors)
	}
}

func TestValidateSchedule_RepositoryFailureIsNotValidation(t *testing.T) {
	repo := &fakeRepo{err: fmt.Errorf("connection refused")}
	v := NewValidator(repo)

	_, err := v.ValidateSchedule(1, validFields(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("repository failure must not surface as validation: %v", err)
	}
}

func TestValidateSchedule_ScenarioSequence(t *testing.T) {
	// first schedule admitted, overlapping second rejected, disjoint third admitted
	repo := &fakeRepo{}
	v := NewValidator(repo)

	first := validFields()
	first["name"] = "S1"
	s1, err := v.ValidateSchedule(1, first, nil)
	if err != nil {
		t.Fatalf("S1 should be admitted: %v", err)
	}
	s1.ID = 1
	repo.schedules = append(repo.schedules, s1)

	second := validFields()
	second["name"] = "S2"
	second["start_time"] = "16:00"
	second["end_time"] = "18:00"
	_, err = v.ValidateSchedule(1, second, nil)
	verr := asValidationError(t, err)
	if !verr.HasConflict() {
		t.Fatalf("S2 overlaps S1 and must be rejected, got %v", verr.FieldErrors)
	}

	third := validFields()
	third["name"] = "S3"
	third["start_time"] = "17:00"
	third["end_time"] = "18:00"
	if _, err := v.ValidateSchedule(1, third, nil); err != nil {
		t.Fatalf("S3 touches S1 at 17:00 and must be admitted: %v", err)
	}
}
