package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

// Resolve returns the schedule active at the given instant, if any. Write
// time conflict enforcement guarantees at most one active schedule matches;
// should stored data violate that (rows edited past the validator), the
// highest priority wins and equal priorities fall back to the smallest id so
// the result stays reproducible.
func Resolve(schedules []model.Schedule, at time.Time) (*model.Schedule, bool) {
	var best *model.Schedule
	for i := range schedules {
		s := &schedules[i]
		if !s.IsActive {
			continue
		}
		iv, err := FromSchedule(*s)
		if err != nil {
			log.Warn().Err(err).Int("schedule_id", s.ID).Msg("skipping malformed stored schedule in resolution")
			continue
		}
		if !iv.ContainsInstant(at) {
			continue
		}
		if best == nil || s.Priority > best.Priority || (s.Priority == best.Priority && s.ID < best.ID) {
			best = s
		}
	}
	return best, best != nil
}
