package models

// ChatMessage is one turn of a conversation, either direction.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxHistoryTurns bounds stored history to the last N exchanges (both directions).
const MaxHistoryTurns = 6

// SessionState is the long-lived per-session conversation state. Created on
// first message for a session ID, cleared only by an explicit reset.
type SessionState struct {
	SessionID           string        `json:"session_id"`
	History             []ChatMessage `json:"history,omitempty"`
	PendingBooking      *Slot         `json:"pending_booking,omitempty"`
	AwaitingPatientInfo bool          `json:"awaiting_patient_info"`
}

// AppendTurn records a user message and the assistant reply, trimming history
// to the last MaxHistoryTurns exchanges.
func (s *SessionState) AppendTurn(userText, assistantText string) {
	s.History = append(s.History,
		ChatMessage{Role: RoleUser, Text: userText},
		ChatMessage{Role: RoleAssistant, Text: assistantText},
	)
	if max := MaxHistoryTurns * 2; len(s.History) > max {
		s.History = s.History[len(s.History)-max:]
	}
}
