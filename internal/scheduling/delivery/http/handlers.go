package http

import (
	"github.com/gin-gonic/gin"

	"tailortalk/pkg/response"
)

// Resolve godoc
// @Summary     Resolve a date phrase
// @Description Maps a natural-language date ("tomorrow", "next Friday", "29th June") to a search window.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body resolveReq true "Phrase and timezone"
// @Success     200  {object} resolveResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/scheduling/resolve [POST]
func (h *handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processResolveReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.Resolve(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Resolve: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newResolveResp(output))
}

// SearchSlots godoc
// @Summary     Find free slots
// @Description Resolves the phrase, reads busy time from the calendar and returns up to ten free slots inside business hours.
// @Tags        Scheduling
// @Produce     json
// @Param       phrase    query string false "Date phrase (default today)"
// @Param       duration  query int    false "Slot length in minutes, 15-480 (default 60)"
// @Param       timezone  query string false "IANA name or alias such as IST"
// @Param       full_week query bool   false "Search five days instead of one"
// @Success     200 {object} searchSlotsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Calendar unavailable"
// @Router      /api/v1/scheduling/slots [GET]
func (h *handler) SearchSlots(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSearchSlotsReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.SearchSlots(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SearchSlots: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSearchSlotsResp(output))
}

// Book godoc
// @Summary     Book a meeting
// @Description Creates a calendar event for the given range.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body bookReq true "Event data"
// @Success     200  {object} bookResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     502  {object} response.Resp "Calendar unavailable"
// @Router      /api/v1/scheduling/bookings [POST]
func (h *handler) Book(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processBookReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.Book(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Book: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBookResp(output))
}

// Cancel godoc
// @Summary     Cancel a meeting
// @Description Deletes a calendar event by id.
// @Tags        Scheduling
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/scheduling/bookings/{id} [DELETE]
func (h *handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	if err := h.uc.CancelEvent(ctx, id); err != nil {
		h.l.Warnf(ctx, "uc.CancelEvent: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// ListEvents godoc
// @Summary     List events
// @Description Lists calendar events on the resolved day, or over several days.
// @Tags        Scheduling
// @Produce     json
// @Param       phrase     query string false "Date phrase (default today)"
// @Param       days_ahead query int    false "Number of days from the resolved date"
// @Param       timezone   query string false "Timezone"
// @Param       query      query string false "Free-text filter"
// @Success     200 {object} listEventsResp
// @Failure     502 {object} response.Resp "Calendar unavailable"
// @Router      /api/v1/scheduling/events [GET]
func (h *handler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListEventsReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.ListEvents(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListEvents: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListEventsResp(output))
}

// VerifyMeeting godoc
// @Summary     Verify a meeting exists
// @Description Looks for events whose title contains the given text on the resolved day.
// @Tags        Scheduling
// @Produce     json
// @Param       title    query string false "Title to look for"
// @Param       phrase   query string false "Date phrase (default tomorrow)"
// @Param       timezone query string false "Timezone"
// @Success     200 {object} verifyResp
// @Router      /api/v1/scheduling/events/verify [GET]
func (h *handler) VerifyMeeting(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processVerifyReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.VerifyMeeting(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.VerifyMeeting: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newVerifyResp(output))
}

// CalendarLink godoc
// @Summary     Google Calendar link
// @Description Builds a Google Calendar web URL for a view and date.
// @Tags        Scheduling
// @Produce     json
// @Param       view query string false "day, week, month or agenda"
// @Param       date query string false "YYYY-MM-DD (default today)"
// @Success     200 {object} linkResp
// @Router      /api/v1/scheduling/link [GET]
func (h *handler) CalendarLink(c *gin.Context) {
	req, err := h.processLinkReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.CalendarLink(req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, linkResp{URL: output.URL})
}

// CurrentTime godoc
// @Summary     Current time
// @Description Reports the current time in a timezone.
// @Tags        Scheduling
// @Produce     json
// @Param       timezone query string false "Timezone"
// @Success     200 {object} timeResp
// @Router      /api/v1/scheduling/time [GET]
func (h *handler) CurrentTime(c *gin.Context) {
	info, err := h.uc.CurrentTime(c.Query("timezone"))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTimeResp(info))
}
