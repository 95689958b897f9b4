package models

// ChatRequest is the payload coming from the client into /api/chat.
type ChatRequest struct {
	Message     string            `json:"message" binding:"required"`
	SessionID   string            `json:"session_id"`
	Context     map[string]any    `json:"context,omitempty"`
	PatientInfo map[string]string `json:"patient_info,omitempty"`
}

// ChatResponse is what the chat handler returns to the client.
type ChatResponse struct {
	Reply             string `json:"reply"`
	SessionID         string `json:"session_id"`
	WorkflowTriggered bool   `json:"workflow_triggered"`
}

// SessionClearRequest asks for a session reset.
type SessionClearRequest struct {
	SessionID string `json:"session_id"`
}

// SessionClearResponse confirms a session reset.
type SessionClearResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}
