package gemini

import (
	"errors"
	"fmt"
)

// ErrBlocked is returned when Gemini refuses the prompt or the answer.
var ErrBlocked = errors.New("gemini: content blocked")

// APIError is a non-200 answer from the generateContent endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Body)
}
