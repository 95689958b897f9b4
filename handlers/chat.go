package handlers

import (
	"net/http"

	"careflow/models"
	"careflow/services/chat"
	"careflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversation endpoints.
type ChatHandler struct {
	Svc chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

// HandleChat processes one user message.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.HandleMessage(c.Request.Context(), &req)
	if err != nil {
		utils.GetLogger().Error("Chat handling failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ClearSession resets all conversation state for a session.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	var req models.SessionClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.ClearSession(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.GetLogger().Error("Session clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
