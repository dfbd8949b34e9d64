package orchestrator

import "errors"

var (
	ErrAgentUnavailable = errors.New("no LLM provider configured")
	ErrEmptyResponse    = errors.New("empty LLM response")
)
