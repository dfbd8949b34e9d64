package http

import (
	"errors"
	"net/http"

	"tailortalk/internal/chat"
	"tailortalk/internal/scheduling"
	"tailortalk/internal/session"
	pkgErrors "tailortalk/pkg/errors"
)

var errMissingID = pkgErrors.NewHTTPError(http.StatusBadRequest, "session id is required")

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrMessageTooLong),
		errors.Is(err, chat.ErrInvalidTimezone):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, scheduling.ErrCalendarUnavailable):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, scheduling.ErrCalendarUnavailable.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
