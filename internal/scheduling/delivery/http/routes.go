package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	r := rg.Group("/scheduling")
	{
		r.POST("/resolve", h.Resolve)
		r.GET("/slots", h.SearchSlots)
		r.POST("/bookings", h.Book)
		r.DELETE("/bookings/:id", h.Cancel)
		r.GET("/events", h.ListEvents)
		r.GET("/events/verify", h.VerifyMeeting)
		r.GET("/link", h.CalendarLink)
		r.GET("/time", h.CurrentTime)
	}
}
