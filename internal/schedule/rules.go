package schedule

import (
	"fmt"
	"time"
)

// Duration bounds in minutes for a schedule's daily window.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = minutesPerDay
)

// Priority bounds, inclusive.
const (
	MinPriority = 1
	MaxPriority = 10
)

// checkDuration validates the wrap-aware daily window length. With either
// time absent there is no window restriction to validate and the rule is
// skipped; parse failures are reported on the offending field.
func checkDuration(startTime, endTime *string) []FieldError {
	if startTime == nil && endTime == nil {
		return nil
	}
	var errs []FieldError
	if startTime == nil {
		errs = append(errs, FieldError{Field: "start_time", Code: CodeRequired,
			Message: "start_time is required when end_time is set"})
	} else if _, err := ParseClock(*startTime); err != nil {
		errs = append(errs, FieldError{Field: "start_time", Code: CodeMalformedInput, Message: err.Error()})
	}
	if endTime == nil {
		errs = append(errs, FieldError{Field: "end_time", Code: CodeRequired,
			Message: "end_time is required when start_time is set"})
	} else if _, err := ParseClock(*endTime); err != nil {
		errs = append(errs, FieldError{Field: "end_time", Code: CodeMalformedInput, Message: err.Error()})
	}
	if len(errs) > 0 {
		return errs
	}

	window, err := NewTimeWindow(startTime, endTime)
	if err != nil {
		return []FieldError{{Field: "start_time", Code: CodeMalformedInput, Message: err.Error()}}
	}
	d := window.Duration()
	if d < MinDurationMinutes {
		return []FieldError{{Field: "end_time", Code: CodeDurationTooShort,
			Message: fmt.Sprintf("schedule must run at least %d minutes, got %d", MinDurationMinutes, d)}}
	}
	if d > MaxDurationMinutes {
		return []FieldError{{Field: "end_time", Code: CodeDurationTooLong,
			Message: fmt.Sprintf("schedule cannot run longer than %d minutes, got %d", MaxDurationMinutes, d)}}
	}
	return nil
}

// checkPriority validates the declared priority value as it arrived in the
// request body. Anything non-numeric or non-integral is out of range, same
// as values outside [1,10].
func checkPriority(raw any) (int, []FieldError) {
	outOfRange := func(detail string) []FieldError {
		return []FieldError{{Field: "priority", Code: CodePriorityOutOfRange,
			Message: fmt.Sprintf("priority must be an integer between %d and %d%s", MinPriority, MaxPriority, detail)}}
	}

	var p int
	switch v := raw.(type) {
	case float64:
		p = int(v)
		if float64(p) != v {
			return 0, outOfRange(fmt.Sprintf(", got %v", v))
		}
	case int:
		p = v
	case int64:
		p = int(v)
	default:
		return 0, outOfRange(fmt.Sprintf(", got %v", raw))
	}
	if p < MinPriority || p > MaxPriority {
		return 0, outOfRange(fmt.Sprintf(", got %d", p))
	}
	return p, nil
}

// TimeRule validates a named instant field: presence, future lead, and
// ordering against a paired earlier field.
type TimeRule struct {
	Field      string
	AllowEmpty bool
	// MinLead requires the value to lie at least this far ahead of the
	// evaluation instant; zero disables the future check.
	MinLead time.Duration
	// After names a paired field the value must not precede. Inclusive
	// permits equality (calendar-date pairs); otherwise the value must be
	// strictly after.
	After     string
	Inclusive bool
}

// Check evaluates the rule for an optional value and its optional paired
// counterpart at the given instant.
func (r TimeRule) Check(value, after *time.Time, now time.Time) []FieldError {
	if value == nil {
		if r.AllowEmpty {
			return nil
		}
		return []FieldError{{Field: r.Field, Code: CodeRequired,
			Message: r.Field + " is required"}}
	}
	var errs []FieldError
	if r.MinLead > 0 && value.Before(now.Add(r.MinLead)) {
		errs = append(errs, FieldError{Field: r.Field, Code: CodeNotInFuture,
			Message: fmt.Sprintf("%s must be at least %s in the future", r.Field, r.MinLead)})
	}
	if r.After != "" && after != nil {
		ordered := value.After(*after) || (r.Inclusive && value.Equal(*after))
		if !ordered {
			errs = append(errs, FieldError{Field: r.Field, Code: CodeInvalidOrdering,
				Message: fmt.Sprintf("%s must not precede %s", r.Field, r.After)})
		}
	}
	return errs
}
