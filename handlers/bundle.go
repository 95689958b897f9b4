package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler         gin.HandlerFunc
	ClearSessionHandler gin.HandlerFunc

	// Booking endpoints
	ConfirmBookingHandler      gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	ListSessionBookingsHandler gin.HandlerFunc

	// Workflow stage endpoints
	TriageHandler         gin.HandlerFunc
	MatchProvidersHandler gin.HandlerFunc
	ScheduleHandler       gin.HandlerFunc
}
