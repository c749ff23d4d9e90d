package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"creative-scribe/internal/domain"
	"creative-scribe/internal/events"
	"creative-scribe/internal/markup"
)

// Generator es lo que el chat necesita del router de proveedores.
type Generator interface {
	Generate(ctx context.Context, selector, prompt string) (string, error)
}

// Publisher es lo que el chat necesita del bus de eventos.
type Publisher interface {
	Publish(topic string)
}

var ErrEmptyPrompt = errors.New("empty prompt")

// ChatService orquesta el flujo de un mensaje: contexto → generación →
// formateo → persistencia → notificación de refresco.
type ChatService struct {
	logger        *zap.Logger
	conversations *ConversationService
	contextBld    *ContextBuilder
	generator     Generator
	publisher     Publisher
}

func NewChatService(
	logger *zap.Logger,
	conversations *ConversationService,
	contextBld *ContextBuilder,
	generator Generator,
	publisher Publisher,
) *ChatService {
	return &ChatService{
		logger:        logger,
		conversations: conversations,
		contextBld:    contextBld,
		generator:     generator,
		publisher:     publisher,
	}
}

// ChatResult es la salida de un envío. SaveErr queda seteado cuando la
// generación salió bien pero la persistencia falló: la respuesta igual se
// entrega y el caller decide cómo notificar.
type ChatResult struct {
	SessionID string
	Response  string
	Message   domain.ConversationMessage
	SaveErr   error
}

// Send procesa un prompt nuevo contra el modelo seleccionado. Con sessionID
// vacío arranca una conversación nueva. No hay reintentos: un fallo de
// generación se devuelve tal cual y no persiste nada.
func (s *ChatService) Send(ctx context.Context, userID, sessionID, modelSelector, prompt string) (ChatResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ChatResult{}, ErrEmptyPrompt
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = s.conversations.NewSessionID()
	}

	contextual := s.contextBld.BuildPrompt(ctx, sessionID, prompt)

	raw, err := s.generator.Generate(ctx, modelSelector, contextual)
	if err != nil {
		return ChatResult{SessionID: sessionID}, err
	}

	formatted := markup.Format(raw)

	// Se persiste el prompt original, no el contextual.
	msg, saveErr := s.conversations.Save(ctx, userID, sessionID, prompt, formatted)
	if saveErr != nil {
		s.logger.Error("conversation save failed", zap.String("session_id", sessionID), zap.Error(saveErr))
	} else if s.publisher != nil {
		s.publisher.Publish(events.TopicChatUpdated)
	}

	return ChatResult{
		SessionID: sessionID,
		Response:  formatted,
		Message:   msg,
		SaveErr:   saveErr,
	}, nil
}

// Delete borra la sesión y avisa al resto de la UI. Devuelve el session id
// activo resultante (fresco si se borró la sesión activa).
func (s *ChatService) Delete(ctx context.Context, sessionID, activeSessionID string) (string, error) {
	next, err := s.conversations.DeleteSession(ctx, sessionID, activeSessionID)
	if err != nil {
		return next, err
	}
	if s.publisher != nil {
		s.publisher.Publish(events.TopicChatUpdated)
	}
	return next, nil
}
