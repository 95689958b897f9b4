package chat

import "strings"

var schedulingKeywords = []string{
	"schedule", "book", "appointment", "see a doctor", "make an appointment",
	"need to see", "want to see", "book me", "schedule me", "make appointment",
	"find appointment", "available", "when can i", "i need an appointment",
}

var medicalKeywords = []string{
	"pain", "hurt", "ache", "symptom", "feeling", "unwell", "sick", "ill",
	"fever", "cough", "headache", "nausea", "dizzy", "chest pain", "stomach",
	"rash", "bleeding", "injury", "wound", "infection", "problem", "issue",
	"concern", "worried", "not feeling well", "what's wrong", "diagnosis",
	"condition", "disease", "disorder", "medical", "health", "doctor",
}

var confirmationKeywords = []string{
	"yes", "confirm", "book it", "proceed", "go ahead", "book this",
	"i confirm", "please book", "book me", "yes please", "sure", "okay",
}

func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DetectSchedulingIntent reports whether the message asks to schedule or book
// an appointment.
func DetectSchedulingIntent(text string) bool {
	return matchesAny(text, schedulingKeywords)
}

// DetectMedicalIntent reports whether the message describes a medical concern
// that warrants triage.
func DetectMedicalIntent(text string) bool {
	return matchesAny(text, medicalKeywords)
}

// DetectConfirmation reports whether the message affirms a pending booking.
func DetectConfirmation(text string) bool {
	return matchesAny(text, confirmationKeywords)
}
