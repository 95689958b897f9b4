package handlers

import (
	"net/http"

	"careflow/models"
	"careflow/services/workflow"

	"github.com/gin-gonic/gin"
)

// WorkflowHandler exposes the individual workflow stages for internal callers
// and diagnostics. The chat endpoint drives the full pipeline; these let each
// stage be exercised in isolation.
type WorkflowHandler struct {
	Engine workflow.Engine
}

func NewWorkflowHandler(engine workflow.Engine) *WorkflowHandler {
	return &WorkflowHandler{Engine: engine}
}

// TriageHandler assesses symptoms and returns a care priority.
func (h *WorkflowHandler) TriageHandler(c *gin.Context) {
	var req struct {
		Symptoms string         `json:"symptoms" binding:"required"`
		Context  map[string]any `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result := h.Engine.Triage(req.Symptoms, req.Context)
	c.JSON(http.StatusOK, result)
}

// MatchProvidersHandler matches symptoms to provider types.
func (h *WorkflowHandler) MatchProvidersHandler(c *gin.Context) {
	var req struct {
		Symptoms string         `json:"symptoms" binding:"required"`
		Priority string         `json:"priority"`
		Context  map[string]any `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result := h.Engine.MatchProviders(c.Request.Context(), req.Symptoms, models.Priority(req.Priority), req.Context)
	c.JSON(http.StatusOK, result)
}

// ScheduleHandler finds appointment slots for a free-text request.
func (h *WorkflowHandler) ScheduleHandler(c *gin.Context) {
	var req struct {
		Request string         `json:"request" binding:"required"`
		Context map[string]any `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result := h.Engine.ScheduleAppointment(c.Request.Context(), req.Request, req.Context)
	c.JSON(http.StatusOK, result)
}
