package scheduling

import "errors"

var (
	ErrCalendarUnavailable = errors.New("calendar is unavailable")
	ErrInvalidDuration     = errors.New("duration must be between 15 and 480 minutes")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrInvalidTimezone     = errors.New("unknown timezone")
	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidView         = errors.New("view must be one of day, week, month, agenda")
)
