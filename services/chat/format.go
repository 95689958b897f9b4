package chat

import (
	"fmt"
	"strings"

	"careflow/models"
)

// FormatWorkflowResponse renders a finished workflow run as a chat reply.
// Precedence: failure, then a completed booking, then a slot awaiting
// confirmation, then a bare triage assessment.
func FormatWorkflowResponse(wf *models.WorkflowContext) string {
	if wf.Err != nil {
		return fmt.Sprintf("I encountered an issue: %s. Please try again or provide more details.", wf.Err.Message)
	}

	if wf.BookingResult != nil {
		return FormatBookingSuccess(wf.BookingResult)
	}

	if wf.RecommendedSlot != nil {
		slot := wf.RecommendedSlot
		var b strings.Builder
		b.WriteString("I found an available appointment for you:\n\n")
		fmt.Fprintf(&b, "**Provider:** %s\n", slot.ProviderName)
		fmt.Fprintf(&b, "**Date:** %s\n", slot.Date)
		fmt.Fprintf(&b, "**Time:** %s\n\n", slot.Time)
		b.WriteString("Would you like me to book this appointment? Please reply with 'yes' or 'confirm' along with your name and contact information (email or phone).")
		return b.String()
	}

	if wf.TriageResult != nil && wf.TriageResult.Assessment != "" {
		var b strings.Builder
		b.WriteString("Based on your symptoms, I've assessed your condition:\n\n")
		fmt.Fprintf(&b, "**Priority:** %s\n", strings.ToUpper(string(wf.TriageResult.Priority)))
		fmt.Fprintf(&b, "**Assessment:** %s\n\n", wf.TriageResult.Assessment)
		b.WriteString("Let me find an appropriate provider and available appointment slots for you...")
		return b.String()
	}

	return "I'm processing your request. Please wait..."
}

// FormatBookingSuccess renders a confirmed booking.
func FormatBookingSuccess(booking *models.Booking) string {
	var b strings.Builder
	b.WriteString("Appointment booked successfully!\n\n")
	fmt.Fprintf(&b, "**Booking ID:** %s\n", booking.BookingID)
	fmt.Fprintf(&b, "**Confirmation Code:** %s\n", booking.ConfirmationCode)
	fmt.Fprintf(&b, "**Provider:** %s\n", booking.Appointment.ProviderName)
	fmt.Fprintf(&b, "**Date:** %s\n", booking.Appointment.Date)
	fmt.Fprintf(&b, "**Time:** %s\n\n", booking.Appointment.Time)
	b.WriteString("Please save your confirmation code for your records.")
	return b.String()
}
