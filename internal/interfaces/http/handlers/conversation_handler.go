package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shallyquinn/Chatbot/internal/application/conversation"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
)

// unavailableReply is returned to clients when the assistant backend is
// unreachable.
const unavailableReply = "Sorry, I can't answer right now. Please try again in a moment."

// ConversationHandler serves conversation turns.
type ConversationHandler struct {
	gate    conversation.Service
	metrics *prometheus.AppMetrics
}

// NewConversationHandler builds a ConversationHandler.  metrics may be nil.
func NewConversationHandler(gate conversation.Service, metrics *prometheus.AppMetrics) *ConversationHandler {
	return &ConversationHandler{gate: gate, metrics: metrics}
}

// ConverseRequest is the body of POST /api/v1/converse.
type ConverseRequest struct {
	User string `json:"user"`
}

// Converse runs one conversation turn.  An unavailable assistant maps to a
// 503 whose body still carries a presentable outcome.
func (h *ConversationHandler) Converse(c *gin.Context) {
	var req ConverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.User) == "" {
		badRequest(c, "user must not be blank")
		return
	}

	outcome, err := h.gate.Converse(c.Request.Context(), req.User)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if h.metrics != nil {
		prometheus.RecordConversation(h.metrics, outcome.Kind.String())
	}

	if outcome.Kind == conversation.KindUnavailable {
		if outcome.Reply == "" {
			outcome.Reply = unavailableReply
		}
		c.JSON(http.StatusServiceUnavailable, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
