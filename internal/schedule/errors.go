package schedule

import "strings"

// Field error codes surfaced to API clients. All are recoverable, user-facing
// validation outcomes, never process failures.
const (
	CodeMalformedInput     = "malformed_input"
	CodeDurationTooShort   = "duration_too_short"
	CodeDurationTooLong    = "duration_too_long"
	CodePriorityOutOfRange = "priority_out_of_range"
	CodeRequired           = "required"
	CodeNotInFuture        = "not_in_future"
	CodeInvalidOrdering    = "invalid_ordering"
	CodeScheduleConflict   = "schedule_conflict"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated rule of one validation call so a
// client can render all problems at once.
type ValidationError struct {
	FieldErrors []FieldError `json:"errors"`
	// ConflictIDs lists the ids of conflicting schedules when a
	// schedule_conflict field error is present, in repository order.
	ConflictIDs []int `json:"conflict_ids,omitempty"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "schedule validation failed: " + strings.Join(msgs, "; ")
}

// HasConflict reports whether the failure includes a schedule conflict, so
// the HTTP layer can answer 409 instead of 422.
func (e *ValidationError) HasConflict() bool {
	for _, fe := range e.FieldErrors {
		if fe.Code == CodeScheduleConflict {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, code, message string) {
	e.FieldErrors = append(e.FieldErrors, FieldError{Field: field, Code: code, Message: message})
}
