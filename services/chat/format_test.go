package chat

import (
	"testing"

	"careflow/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatWorkflowResponsePrecedence(t *testing.T) {
	booking := &models.Booking{
		BookingID:        "b-1",
		ConfirmationCode: "123456",
		Appointment:      models.AppointmentDetails{ProviderName: "Cardiologist", Date: "2026-03-05", Time: "10:00"},
	}
	slot := &models.Slot{SlotID: "slot_001", ProviderName: "Cardiologist", Date: "2026-03-05", Time: "10:00"}
	triage := &models.TriageResult{Priority: models.PriorityUrgent, Assessment: "Urgent condition detected."}

	// Error wins over everything.
	wf := &models.WorkflowContext{
		Err:           models.NewStageError(models.StepScheduling, models.ErrKindCollaborator, "retrieval down"),
		BookingResult: booking,
	}
	assert.Contains(t, FormatWorkflowResponse(wf), "I encountered an issue: retrieval down")

	// Booking beats a recommended slot.
	wf = &models.WorkflowContext{BookingResult: booking, RecommendedSlot: slot}
	reply := FormatWorkflowResponse(wf)
	assert.Contains(t, reply, "123456")
	assert.Contains(t, reply, "b-1")

	// Recommended slot beats triage and asks for confirmation.
	wf = &models.WorkflowContext{RecommendedSlot: slot, TriageResult: triage}
	reply = FormatWorkflowResponse(wf)
	assert.Contains(t, reply, "Would you like me to book this appointment?")
	assert.Contains(t, reply, "Cardiologist")

	// Triage alone reports the assessment.
	wf = &models.WorkflowContext{TriageResult: triage}
	reply = FormatWorkflowResponse(wf)
	assert.Contains(t, reply, "URGENT")
	assert.Contains(t, reply, "Urgent condition detected.")

	// Nothing at all.
	wf = &models.WorkflowContext{}
	assert.Contains(t, FormatWorkflowResponse(wf), "processing your request")
}
