package handlers

import (
	"errors"
	"net/http"

	bookingRepo "careflow/database/repository/booking"
	"careflow/models"
	"careflow/services/workflow"
	"careflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes direct booking endpoints, used both by API clients
// and by downstream agents confirming a slot out of band.
type BookingHandler struct {
	Engine workflow.Engine
	Repo   bookingRepo.BookingRepository
}

func NewBookingHandler(engine workflow.Engine, repo bookingRepo.BookingRepository) *BookingHandler {
	return &BookingHandler{Engine: engine, Repo: repo}
}

// ConfirmBooking books a slot directly by ID.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	slot, ok := h.Engine.SlotByID(req.SlotID)
	if !ok {
		// The slot may come from an older catalog generation; trust the
		// caller's appointment details in that case.
		if req.AppointmentDetails.Date == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "slot not found", "slot_id": req.SlotID})
			return
		}
		slot = models.Slot{
			SlotID:          req.SlotID,
			ProviderType:    req.AppointmentDetails.ProviderType,
			ProviderName:    req.AppointmentDetails.ProviderName,
			Date:            req.AppointmentDetails.Date,
			Time:            req.AppointmentDetails.Time,
			DurationMinutes: req.AppointmentDetails.DurationMinutes,
			Available:       true,
		}
	}

	patient := models.PatientInfo{
		Name:    req.PatientName,
		Contact: req.PatientContact,
	}
	sessionID := req.AdditionalInfo["session_id"]

	booking, err := h.Engine.BookSlot(c.Request.Context(), &slot, patient, sessionID)
	if err != nil {
		var stageErr *models.StageError
		if errors.As(err, &stageErr) && stageErr.Kind == models.ErrKindValidation {
			c.JSON(http.StatusBadRequest, gin.H{"error": stageErr.Message})
			return
		}
		utils.GetLogger().Error("Booking failed", zap.String("slotId", req.SlotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBooking fetches one booking by ID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("id")
	booking, err := h.Repo.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found", "booking_id": bookingID})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListSessionBookings returns all bookings made in one session.
func (h *BookingHandler) ListSessionBookings(c *gin.Context) {
	sessionID := c.Param("sessionID")
	bookings, err := h.Repo.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		utils.GetLogger().Error("Booking list failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "bookings": bookings})
}
