package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creative-scribe/internal/events"
)

// EventsHandler expone el bus interno como stream SSE para que el cliente
// recargue sidebar y perfil al recibir la señal correspondiente.
type EventsHandler struct {
	logger *zap.Logger
	bus    *events.Bus
}

func NewEventsHandler(logger *zap.Logger, bus *events.Bus) *EventsHandler {
	return &EventsHandler{logger: logger, bus: bus}
}

// Stream maneja GET /events. Las señales no llevan payload: el evento SSE
// solo indica qué recargar.
func (h *EventsHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	chatCh, err := h.bus.Subscribe(ctx, events.TopicChatUpdated)
	if err != nil {
		h.logger.Error("events subscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not subscribe"})
		return
	}
	profileCh, err := h.bus.Subscribe(ctx, events.TopicProfileUpdated)
	if err != nil {
		h.logger.Error("events subscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not subscribe"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case msg, ok := <-chatCh:
			if !ok {
				return false
			}
			msg.Ack()
			c.SSEvent("chat-updated", "reload")
			return true
		case msg, ok := <-profileCh:
			if !ok {
				return false
			}
			msg.Ack()
			c.SSEvent("profile-updated", "reload")
			return true
		case <-ctx.Done():
			return false
		}
	})
}
