package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoOfferedSlots  = errors.New("no slots have been offered yet")
	ErrSlotOutOfRange  = errors.New("slot number is out of range")
)
