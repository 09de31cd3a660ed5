package schedule

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

// Conflicts returns the subset of existing schedules whose activation region
// intersects the candidate's on all three dimensions at once. The input is
// assumed to be scoped to one tenant with the candidate's own id already
// excluded. Results keep the input order so callers produce deterministic
// conflict messages.
func Conflicts(candidate Interval, existing []model.Schedule) []model.Schedule {
	var out []model.Schedule
	for _, other := range existing {
		iv, err := FromSchedule(other)
		if err != nil {
			// a stored row the interval model cannot parse predates
			// validation; it cannot be compared, only reported
			log.Warn().Err(err).Int("schedule_id", other.ID).Msg("skipping malformed stored schedule in conflict check")
			continue
		}
		if candidate.Overlaps(iv) {
			out = append(out, other)
		}
	}
	return out
}

// CheckCandidate runs the conflict decision for a normalized candidate
// against a set of stored schedules. It is the single decision both the
// validator and the persistence layer's locked re-check share: any snapshot
// read before the per-tenant lock can be stale, so the write repeats the
// decision on the rows visible inside the locked transaction. An inactive
// candidate collides with nothing. Returns a *ValidationError on conflict, a
// plain error if the candidate does not normalize.
func CheckCandidate(candidate model.Schedule, existing []model.Schedule) error {
	if !candidate.IsActive {
		return nil
	}
	iv, err := FromSchedule(candidate)
	if err != nil {
		return err
	}
	conflicts := Conflicts(iv, existing)
	if len(conflicts) == 0 {
		return nil
	}
	verr := &ValidationError{}
	names := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		names = append(names, c.Name)
		verr.ConflictIDs = append(verr.ConflictIDs, c.ID)
	}
	verr.add("schedule", CodeScheduleConflict,
		"overlaps with existing schedule(s): "+strings.Join(names, ", "))
	return verr
}
