package http

import (
	"errors"
	"net/http"

	"tailortalk/internal/scheduling"
	pkgErrors "tailortalk/pkg/errors"
)

var errMissingID = pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrInvalidDuration),
		errors.Is(err, scheduling.ErrInvalidTimeRange),
		errors.Is(err, scheduling.ErrInvalidTimezone),
		errors.Is(err, scheduling.ErrInvalidView):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, scheduling.ErrEventNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, scheduling.ErrCalendarUnavailable):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, scheduling.ErrCalendarUnavailable.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
