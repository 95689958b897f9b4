package chat

import (
	"context"

	"careflow/models"
	"careflow/utils"

	"go.uber.org/zap"
)

// handlePendingBooking runs the booking confirmation sub-flow: the session has
// a recommended slot waiting, and each message either supplies the missing
// patient details or completes the booking. The pending slot survives a failed
// booking attempt so the user can retry.
func (s *DefaultChatService) handlePendingBooking(ctx context.Context, state *models.SessionState, req *models.ChatRequest) (*models.ChatResponse, error) {
	isConfirmation := DetectConfirmation(req.Message)
	extracted := ExtractPatientInfo(req.Message)

	// Info extracted from the message wins over what the request carried.
	patientInfo := map[string]string{}
	for k, v := range req.PatientInfo {
		patientInfo[k] = v
	}
	for k, v := range extracted {
		patientInfo[k] = v
	}

	if patientInfo["contact"] == "" {
		var reply string
		if isConfirmation || state.AwaitingPatientInfo {
			reply = "I'd be happy to book that appointment! However, I need your contact information to complete the booking. Please provide your name and either your email address or phone number."
		} else {
			reply = "To complete your booking, I need your contact information (email or phone number). Please provide it."
		}
		state.AwaitingPatientInfo = true
		state.AppendTurn(req.Message, reply)
		s.saveSession(ctx, state)

		return &models.ChatResponse{
			Reply:             reply,
			SessionID:         state.SessionID,
			WorkflowTriggered: false,
		}, nil
	}

	state.AwaitingPatientInfo = false

	patient := models.PatientInfo{
		Name:    patientInfo["name"],
		Contact: patientInfo["contact"],
	}

	booking, err := s.Engine.BookSlot(ctx, state.PendingBooking, patient, state.SessionID)
	if err != nil {
		utils.GetLogger().Error("Booking confirmation failed",
			zap.String("sessionId", state.SessionID),
			zap.String("slotId", state.PendingBooking.SlotID),
			zap.Error(err),
		)
		reply := "I encountered an error while booking your appointment: " + err.Error() + ". Please try again."
		state.AppendTurn(req.Message, reply)
		s.saveSession(ctx, state)

		return &models.ChatResponse{
			Reply:             reply,
			SessionID:         state.SessionID,
			WorkflowTriggered: true,
		}, nil
	}

	// Booking done; the sub-flow is over.
	state.PendingBooking = nil

	reply := FormatBookingSuccess(booking)
	state.AppendTurn(req.Message, reply)
	s.saveSession(ctx, state)

	return &models.ChatResponse{
		Reply:             reply,
		SessionID:         state.SessionID,
		WorkflowTriggered: true,
	}, nil
}
