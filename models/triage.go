package models

// Priority is the triage-assigned urgency class.
type Priority string

const (
	PriorityEmergency Priority = "emergency"
	PriorityUrgent    Priority = "urgent"
	PriorityRoutine   Priority = "routine"
	PriorityUnknown   Priority = "unknown"
)

// TriageResult is the outcome of the triage stage.
type TriageResult struct {
	Priority          Priority       `json:"priority"`
	Assessment        string         `json:"assessment"`
	RecommendedAction string         `json:"recommended_action"`
	Symptoms          string         `json:"symptoms"`
	Context           map[string]any `json:"context,omitempty"`
}

// VitalSigns holds defensively parsed vitals from the request context.
// Non-numeric values are dropped rather than failing triage.
type VitalSigns struct {
	Temperature float64
	HasFever    bool
	Age         int
	HasAge      bool
	PainLevel   int
	SeverePain  bool
}
