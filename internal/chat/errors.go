package chat

import "errors"

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrMessageTooLong  = errors.New("message is too long")
	ErrInvalidTimezone = errors.New("invalid timezone")
)
