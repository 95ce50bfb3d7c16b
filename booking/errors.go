package booking

import "errors"

// Domain errors are sentinels so that handlers can map each one to a
// distinct HTTP response with errors.Is. Wrapped variants carry detail,
// e.g. fmt.Errorf("%w: notes required", ErrValidation).
var (
	ErrValidation             = errors.New("validation failed")
	ErrInvalidCalendarData    = errors.New("invalid calendar data")
	ErrUnauthorized           = errors.New("actor is not allowed to perform this action")
	ErrInvalidTransition      = errors.New("meeting state does not allow this action")
	ErrNoOpReschedule         = errors.New("proposed slot is identical to the current slot")
	ErrSlotUnavailable        = errors.New("proposed slot is not available")
	ErrConcurrentModification = errors.New("meeting was modified concurrently, re-fetch and retry")
	ErrUnavailable            = errors.New("downstream dependency unavailable")
	ErrMeetingNotFound        = errors.New("meeting not found")
)

// ErrorCode returns the machine-readable code for a domain error, for API
// payloads alongside the human-readable message.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCalendarData):
		return "INVALID_CALENDAR_DATA"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrNoOpReschedule):
		return "NOOP_RESCHEDULE"
	case errors.Is(err, ErrSlotUnavailable):
		return "SLOT_UNAVAILABLE"
	case errors.Is(err, ErrConcurrentModification):
		return "CONCURRENT_MODIFICATION"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrMeetingNotFound):
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}
