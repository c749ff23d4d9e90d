package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creative-scribe/internal/llm"
	"creative-scribe/internal/repository"
	"creative-scribe/internal/service"
)

// sidebarSessionLimit es el tamaño por defecto de la lista de sesiones.
const sidebarSessionLimit = 7

// ChatHandler mantiene dependencias para endpoints de chat y sesiones.
type ChatHandler struct {
	logger        *zap.Logger
	chatServ      *service.ChatService
	conversations *service.ConversationService
	aggregator    *service.SessionAggregator
}

func NewChatHandler(
	logger *zap.Logger,
	chatServ *service.ChatService,
	conversations *service.ConversationService,
	aggregator *service.SessionAggregator,
) *ChatHandler {
	return &ChatHandler{
		logger:        logger,
		chatServ:      chatServ,
		conversations: conversations,
		aggregator:    aggregator,
	}
}

// SendMessage maneja POST /chat/message.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		Model     string `json:"model"`
		Prompt    string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	claims, _ := GetAuthClaims(c)

	result, err := h.chatServ.Send(c.Request.Context(), claims.UserID, req.SessionID, req.Model, req.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty prompt"})
			return
		}
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			h.logger.Error("generation failed",
				zap.String("provider", genErr.Provider),
				zap.String("model", genErr.Model),
				zap.Error(err),
			)
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate response"})
			return
		}
		h.logger.Error("send message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		return
	}

	resp := gin.H{
		"session_id": result.SessionID,
		"response":   result.Response,
	}
	if result.SaveErr != nil {
		// La respuesta se generó bien: se entrega igual, con aviso de que la
		// conversación no quedó guardada.
		resp["warning"] = "conversation could not be saved"
	} else {
		resp["message"] = result.Message
	}
	c.JSON(http.StatusOK, resp)
}

// ListSessions maneja GET /chat/sessions.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	limit := sidebarSessionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	sessions, err := h.aggregator.ListSessions(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// LoadSession maneja GET /chat/sessions/:id.
func (h *ChatHandler) LoadSession(c *gin.Context) {
	sessionID := c.Param("id")

	messages, err := h.conversations.LoadSession(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("load session failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

// DeleteSession maneja DELETE /chat/sessions/:id. El query param active lleva
// la sesión activa del cliente; si coincide con la borrada, la respuesta trae
// un identificador fresco.
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	activeSessionID := c.Query("active")

	next, err := h.chatServ.Delete(c.Request.Context(), sessionID, activeSessionID)
	if err != nil {
		var perr *repository.PersistenceError
		if errors.As(err, &perr) {
			h.logger.Error("delete session failed", zap.String("session_id", sessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete session"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_session_id": next})
}
