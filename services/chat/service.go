package chat

import (
	"context"
	"fmt"
	"strings"

	"careflow/models"
	"careflow/services/inference"
	"careflow/services/workflow"
	"careflow/utils"

	"go.uber.org/zap"
)

const defaultSessionID = "default"

// ChatService is the conversation gate: it routes each message to the booking
// sub-flow, the appointment workflow, or plain chat.
type ChatService interface {
	HandleMessage(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	ClearSession(ctx context.Context, sessionID string) (*models.SessionClearResponse, error)
}

// DefaultChatService implements ChatService. Generator may be nil, in which
// case plain chat returns a canned reply instead of model output.
type DefaultChatService struct {
	Engine    workflow.Engine
	Sessions  SessionStore
	Generator inference.Generator

	locks *sessionLocks
}

// NewDefaultChatService builds the gate service.
func NewDefaultChatService(engine workflow.Engine, sessions SessionStore, generator inference.Generator) *DefaultChatService {
	return &DefaultChatService{
		Engine:    engine,
		Sessions:  sessions,
		Generator: generator,
		locks:     newSessionLocks(),
	}
}

// HandleMessage processes one user turn. Turns within a session are
// serialized; distinct sessions run concurrently.
func (s *DefaultChatService) HandleMessage(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	mu := s.locks.lock(sessionID)
	defer mu.Unlock()

	logger := utils.GetLogger()

	state, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		// Session store outage degrades to a stateless turn.
		logger.Warn("Session load failed, continuing without history",
			zap.String("sessionId", sessionID),
			zap.Error(err),
		)
		state = &models.SessionState{SessionID: sessionID}
	}

	// A pending booking takes over the conversation until resolved.
	if state.PendingBooking != nil {
		return s.handlePendingBooking(ctx, state, req)
	}

	if DetectMedicalIntent(req.Message) || DetectSchedulingIntent(req.Message) {
		return s.runWorkflowTurn(ctx, state, req)
	}

	reply := s.plainChat(ctx, state, req.Message)

	state.AppendTurn(req.Message, reply)
	s.saveSession(ctx, state)

	return &models.ChatResponse{
		Reply:             reply,
		SessionID:         state.SessionID,
		WorkflowTriggered: false,
	}, nil
}

// runWorkflowTurn drives the appointment workflow from triage for one
// message. A run that ends with an error on the context is still answered by
// the formatter; the failure stays visible to the user instead of being
// silently replaced with small talk.
func (s *DefaultChatService) runWorkflowTurn(ctx context.Context, state *models.SessionState, req *models.ChatRequest) (*models.ChatResponse, error) {
	wf := &models.WorkflowContext{
		UserMessage: req.Message,
		SessionID:   state.SessionID,
		Context:     req.Context,
		PatientInfo: req.PatientInfo,
		NextStep:    models.StepTriage,
	}

	wf = s.Engine.Run(ctx, wf)
	if wf.Err != nil {
		utils.GetLogger().Warn("Workflow run failed",
			zap.String("sessionId", state.SessionID),
			zap.String("stage", string(wf.Err.Stage)),
			zap.String("kind", string(wf.Err.Kind)),
			zap.String("error", wf.Err.Message),
		)
	}

	reply := FormatWorkflowResponse(wf)

	// A recommended slot opens the confirmation sub-flow.
	if wf.Err == nil && wf.BookingResult == nil && wf.RecommendedSlot != nil {
		state.PendingBooking = wf.RecommendedSlot
		state.AwaitingPatientInfo = false
	}

	state.AppendTurn(req.Message, reply)
	s.saveSession(ctx, state)

	return &models.ChatResponse{
		Reply:             reply,
		SessionID:         state.SessionID,
		WorkflowTriggered: true,
	}, nil
}

// plainChat answers a message with the language model over trimmed history.
func (s *DefaultChatService) plainChat(ctx context.Context, state *models.SessionState, message string) string {
	if s.Generator == nil {
		return "I'm here to help with medical questions and appointment booking. How can I help you today?"
	}

	prompt := buildPrompt(state.History, message)
	reply, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		utils.GetLogger().Error("Chat generation failed",
			zap.String("sessionId", state.SessionID),
			zap.Error(err),
		)
		return "I'm having trouble responding right now. Please try again in a moment."
	}
	return strings.TrimSpace(reply)
}

// buildPrompt renders the conversation as a simple role-tagged transcript.
// The model API applies its own chat template on top.
func buildPrompt(history []models.ChatMessage, userText string) string {
	var b strings.Builder
	b.WriteString("System: You are a helpful medical assistant chatbot.\n")
	for _, msg := range history {
		switch msg.Role {
		case models.RoleUser:
			fmt.Fprintf(&b, "User: %s\n", msg.Text)
		default:
			fmt.Fprintf(&b, "Assistant: %s\n", msg.Text)
		}
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", userText)
	return b.String()
}

// ClearSession wipes all stored state for a session.
func (s *DefaultChatService) ClearSession(ctx context.Context, sessionID string) (*models.SessionClearResponse, error) {
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	mu := s.locks.lock(sessionID)
	defer mu.Unlock()

	if err := s.Sessions.Clear(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to clear session %s: %w", sessionID, err)
	}
	return &models.SessionClearResponse{
		Message:   "Session cleared",
		SessionID: sessionID,
	}, nil
}

func (s *DefaultChatService) saveSession(ctx context.Context, state *models.SessionState) {
	if err := s.Sessions.Set(ctx, state.SessionID, state); err != nil {
		utils.GetLogger().Error("Failed to persist session state",
			zap.String("sessionId", state.SessionID),
			zap.Error(err),
		)
	}
}
