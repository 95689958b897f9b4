package workflow

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"careflow/models"
	"careflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookSlot creates a booking for the given slot and patient. The returned
// booking carries a generated ID and a 6-digit confirmation code. Persistence
// and notification failures are reported but the repository write is the only
// one that aborts the booking.
func (e *DefaultEngine) BookSlot(ctx context.Context, slot *models.Slot, patient models.PatientInfo, sessionID string) (*models.Booking, error) {
	if slot == nil || slot.SlotID == "" {
		return nil, models.NewStageError(models.StepBooking, models.ErrKindValidation, "no slot selected for booking")
	}
	if strings.TrimSpace(patient.Contact) == "" {
		return nil, models.NewStageError(models.StepBooking, models.ErrKindValidation, "patient contact information is required to book")
	}
	if strings.TrimSpace(patient.Name) == "" {
		patient.Name = "Patient"
	}

	booking := &models.Booking{
		BookingID:        uuid.New().String(),
		SlotID:           slot.SlotID,
		ConfirmationCode: fmt.Sprintf("%06d", rand.Intn(1000000)),
		Status:           "confirmed",
		SessionID:        sessionID,
		Patient:          patient,
		Appointment: models.AppointmentDetails{
			ProviderType:    slot.ProviderType,
			ProviderName:    slot.ProviderName,
			Date:            slot.Date,
			Time:            slot.Time,
			DurationMinutes: slot.DurationMinutes,
		},
		BookingTime: e.now().UTC(),
	}
	booking.Message = fmt.Sprintf("Appointment confirmed with %s on %s at %s. Your confirmation code is %s.",
		booking.Appointment.ProviderName, booking.Appointment.Date, booking.Appointment.Time, booking.ConfirmationCode)

	if e.Bookings != nil {
		if err := e.Bookings.Create(ctx, booking); err != nil {
			return nil, models.NewStageError(models.StepBooking, models.ErrKindCollaborator, "failed to persist booking: %v", err)
		}
	}

	if e.Notifier != nil {
		if err := e.Notifier.EnqueueBookingNotify(booking); err != nil {
			// Booking stands even if the notification cannot be queued.
			utils.GetLogger().Warn("Failed to enqueue booking notification",
				zap.String("bookingId", booking.BookingID),
				zap.Error(err),
			)
		}
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", booking.BookingID),
		zap.String("slotId", booking.SlotID),
		zap.String("sessionId", sessionID),
	)
	return booking, nil
}

// runBooking is the booking stage function. Patient details come from the
// workflow's patient info map, falling back to the request context.
func (e *DefaultEngine) runBooking(ctx context.Context, wf *models.WorkflowContext) {
	if wf.RecommendedSlot == nil || wf.RecommendedSlot.SlotID == "" {
		wf.Fail(models.NewStageError(models.StepBooking, models.ErrKindValidation, "no slot selected for booking"))
		return
	}

	patient := models.PatientInfo{
		Name:    wf.PatientInfo["name"],
		Contact: wf.PatientInfo["contact"],
	}
	if patient.Name == "" {
		patient.Name = wf.ContextString("patient_name")
	}
	if patient.Contact == "" {
		patient.Contact = wf.ContextString("patient_contact")
	}

	booking, err := e.BookSlot(ctx, wf.RecommendedSlot, patient, wf.SessionID)
	if err != nil {
		if stageErr, ok := err.(*models.StageError); ok {
			wf.Fail(stageErr)
		} else {
			wf.Fail(models.NewStageError(models.StepBooking, models.ErrKindStageFailure, "%s", err.Error()))
		}
		return
	}

	wf.BookingResult = booking
	wf.BookingConfirmed = true
	wf.NextStep = models.StepEnd
}
