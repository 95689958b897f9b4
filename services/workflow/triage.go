package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"careflow/models"
)

// Emergency keywords - requires immediate medical attention.
var emergencyKeywords = []string{
	"chest pain", "heart attack", "cardiac arrest", "stopped breathing",
	"difficulty breathing", "can't breathe", "choking", "severe bleeding",
	"unconscious", "unresponsive", "severe allergic reaction", "anaphylaxis",
	"stroke", "seizure", "severe head injury", "severe trauma",
	"severe burn", "overdose", "poisoning", "suicidal", "self-harm",
}

// Urgent keywords - requires prompt medical attention (within hours).
var urgentKeywords = []string{
	"high fever", "severe pain", "severe headache", "severe abdominal pain",
	"broken bone", "fracture", "severe vomiting", "severe diarrhea",
	"severe dehydration", "severe infection", "worsening condition",
	"cannot urinate", "severe allergic reaction", "moderate bleeding",
}

// Routine keywords - can wait for regular appointment.
var routineKeywords = []string{
	"mild", "minor", "checkup", "routine", "follow-up", "prescription refill",
	"cold symptoms", "mild cough", "mild headache", "mild pain",
}

const (
	feverThreshold     = 100.4 // Fahrenheit
	highFeverThreshold = 103.0
	severePainLevel    = 7 // on a 1-10 scale
)

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseVitals extracts vital signs from the free-form context map. Values that
// fail to parse are dropped rather than failing the stage.
func parseVitals(context map[string]any) models.VitalSigns {
	var vitals models.VitalSigns
	if context == nil {
		return vitals
	}

	tempVal, ok := context["temperature"]
	if !ok {
		tempVal, ok = context["fever"]
	}
	if ok {
		if temp, parsed := toFloat(tempVal); parsed {
			vitals.Temperature = temp
			vitals.HasFever = temp >= feverThreshold
		}
	}

	if v, ok := context["age"]; ok {
		if age, parsed := toInt(v); parsed {
			vitals.Age = age
			vitals.HasAge = true
		}
	}

	if v, ok := context["pain_level"]; ok {
		if pain, parsed := toInt(v); parsed {
			vitals.PainLevel = pain
			vitals.SeverePain = pain >= severePainLevel
		}
	}

	return vitals
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		return i, err == nil
	default:
		return 0, false
	}
}

// Triage assesses symptoms and assigns a care priority using ordered rule
// sets. The first matching rule wins; there is no scoring.
func Triage(symptoms string, context map[string]any) *models.TriageResult {
	vitals := parseVitals(context)

	var priority models.Priority
	var assessment, action string

	switch {
	case containsAny(symptoms, emergencyKeywords):
		priority = models.PriorityEmergency
		assessment = "Emergency condition detected. Immediate medical attention required."
		action = "Call 911 or go to the nearest emergency room immediately."

	case containsAny(symptoms, urgentKeywords) || vitals.SeverePain:
		priority = models.PriorityUrgent
		assessment = "Urgent condition detected. Prompt medical attention recommended within hours."
		action = "Seek urgent care or visit emergency room if symptoms worsen."

	case vitals.HasFever && vitals.Temperature >= highFeverThreshold:
		priority = models.PriorityUrgent
		assessment = fmt.Sprintf("High fever detected (%.1f°F). Medical attention recommended.", vitals.Temperature)
		action = "Seek medical care, especially if fever persists or other symptoms develop."

	case containsAny(symptoms, routineKeywords):
		priority = models.PriorityRoutine
		assessment = "Routine condition. Non-urgent medical attention."
		action = "Schedule a regular appointment or consult with a healthcare provider."

	default:
		priority = models.PriorityUnknown
		assessment = "Unable to determine priority from provided information. Additional assessment may be needed."
		action = "Consult with a healthcare provider for proper evaluation."
	}

	// Context-specific notes.
	if context != nil {
		var notes []string
		if vitals.HasAge {
			if vitals.Age < 2 {
				notes = append(notes, "Patient is an infant - may require pediatric-specific care.")
			} else if vitals.Age >= 65 {
				notes = append(notes, "Patient is elderly - may require additional monitoring.")
			}
		}
		if cond, ok := context["existing_conditions"]; ok {
			notes = append(notes, fmt.Sprintf("Existing conditions: %v", cond))
		}
		if len(notes) > 0 {
			assessment += " " + strings.Join(notes, " ")
		}
	}

	return &models.TriageResult{
		Priority:          priority,
		Assessment:        assessment,
		RecommendedAction: action,
		Symptoms:          symptoms,
		Context:           context,
	}
}

// runTriage is the triage stage function.
func (e *DefaultEngine) runTriage(wf *models.WorkflowContext) {
	symptoms := wf.Symptoms
	if symptoms == "" {
		symptoms = wf.UserMessage
	}

	result := Triage(symptoms, wf.Context)

	wf.TriageResult = result
	wf.Priority = result.Priority
	wf.Symptoms = result.Symptoms
	wf.NextStep = models.StepProviderMatching
}
