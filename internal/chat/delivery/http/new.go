package http

import (
	"tailortalk/internal/chat"
	pkgLog "tailortalk/pkg/log"
)

type handler struct {
	l  pkgLog.Logger
	uc chat.UseCase
}

// New creates a new chat HTTP handler.
func New(l pkgLog.Logger, uc chat.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
