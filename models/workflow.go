package models

import "fmt"

// Step identifies one stage of the appointment workflow.
type Step string

const (
	StepTriage            Step = "triage"
	StepProviderMatching  Step = "provider_matching"
	StepScheduling        Step = "scheduling"
	StepHumanConfirmation Step = "human_confirmation"
	StepBooking           Step = "booking"
	StepEnd               Step = "end"
)

// ErrorKind classifies stage failures so callers can react without string matching.
type ErrorKind string

const (
	ErrKindValidation   ErrorKind = "validation"
	ErrKindCollaborator ErrorKind = "collaborator_unavailable"
	ErrKindStageFailure ErrorKind = "stage_failure"
)

// StageError is a typed failure produced by a workflow stage.
type StageError struct {
	Kind    ErrorKind `json:"kind"`
	Stage   Step      `json:"stage"`
	Message string    `json:"message"`
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Stage, e.Message)
}

// NewStageError builds a typed stage failure.
func NewStageError(stage Step, kind ErrorKind, format string, args ...any) *StageError {
	return &StageError{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// WorkflowContext is the single record threaded through one workflow run.
// After every transition exactly one of the following holds: Err is set,
// NextStep is StepEnd with a terminal result, or NextStep points at a
// pending stage.
type WorkflowContext struct {
	UserMessage string            `json:"user_message"`
	SessionID   string            `json:"session_id"`
	Context     map[string]any    `json:"context,omitempty"`
	PatientInfo map[string]string `json:"patient_info,omitempty"`

	// Triage results.
	Symptoms     string        `json:"symptoms,omitempty"`
	Priority     Priority      `json:"priority,omitempty"`
	TriageResult *TriageResult `json:"triage_result,omitempty"`

	// Provider matching results.
	ProviderMatch   *ProviderMatchResult `json:"provider_match_result,omitempty"`
	MatchedProvider *ProviderMatch       `json:"matched_provider,omitempty"`

	// Scheduling results.
	SchedulingResult *SchedulingResult `json:"scheduling_result,omitempty"`
	RecommendedSlot  *Slot             `json:"recommended_slot,omitempty"`
	AvailableSlots   []Slot            `json:"available_slots,omitempty"`

	// Booking results.
	BookingConfirmed bool     `json:"booking_confirmed"`
	BookingResult    *Booking `json:"booking_result,omitempty"`

	// Flow control.
	NextStep Step        `json:"next_step"`
	Err      *StageError `json:"error,omitempty"`
}

// Fail marks the run as terminally failed.
func (wf *WorkflowContext) Fail(err *StageError) {
	wf.Err = err
	wf.NextStep = StepEnd
}

// ContextString returns a string value from the free-form context map, or "".
func (wf *WorkflowContext) ContextString(key string) string {
	if wf.Context == nil {
		return ""
	}
	if v, ok := wf.Context[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ContextBool returns a boolean value from the free-form context map.
func (wf *WorkflowContext) ContextBool(key string) bool {
	if wf.Context == nil {
		return false
	}
	if v, ok := wf.Context[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
