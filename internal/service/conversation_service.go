package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"creative-scribe/internal/domain"
	"creative-scribe/internal/repository"
)

// ConversationService encapsula el acceso al log plano de conversaciones y
// el ciclo de vida de los identificadores de sesión.
type ConversationService struct {
	repo repository.ConversationRepository
}

var (
	ErrConversationServiceNotConfigured = errors.New("conversation service not configured")
	ErrConversationInvalidInput         = errors.New("conversation invalid input")
)

const defaultRecentLimit = 10

func NewConversationService(repo repository.ConversationRepository) *ConversationService {
	return &ConversationService{repo: repo}
}

// NewSessionID genera un identificador de sesión fresco. Se reutiliza para
// todos los mensajes de la conversación.
func (s *ConversationService) NewSessionID() string {
	return uuid.NewString()
}

// Save registra un intercambio (prompt, response) con message_id y timestamp
// frescos. Solo se llama después de recibir una respuesta exitosa del modelo.
func (s *ConversationService) Save(ctx context.Context, userID, sessionID, prompt, response string) (domain.ConversationMessage, error) {
	if s == nil || s.repo == nil {
		return domain.ConversationMessage{}, ErrConversationServiceNotConfigured
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || strings.TrimSpace(prompt) == "" {
		return domain.ConversationMessage{}, ErrConversationInvalidInput
	}

	msg := domain.ConversationMessage{
		UserID:    strings.TrimSpace(userID),
		SessionID: sessionID,
		MessageID: uuid.NewString(),
		Prompt:    prompt,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return domain.ConversationMessage{}, err
	}
	return msg, nil
}

// FetchRecent devuelve hasta limit mensajes de la sesión, más recientes primero.
func (s *ConversationService) FetchRecent(ctx context.Context, sessionID string, limit int) ([]domain.ConversationMessage, error) {
	if s == nil || s.repo == nil {
		return nil, ErrConversationServiceNotConfigured
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []domain.ConversationMessage{}, nil
	}
	return s.repo.FetchRecent(ctx, sessionID, limit)
}

// LoadSession reconstruye la sesión completa en orden cronológico, expandiendo
// cada intercambio persistido en el par user/assistant que consume la UI.
func (s *ConversationService) LoadSession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if s == nil || s.repo == nil {
		return nil, ErrConversationServiceNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []domain.ChatMessage{}, nil
	}

	stored, err := s.repo.FetchAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(stored)*2)
	for _, msg := range stored {
		messages = append(messages,
			domain.ChatMessage{Role: domain.RoleUser, Content: msg.Prompt, Timestamp: msg.Timestamp},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: msg.Response, Timestamp: msg.Timestamp},
		)
	}
	return messages, nil
}

// DeleteSession borra todos los mensajes de la sesión. Es idempotente: borrar
// una sesión inexistente no es error. Si la sesión borrada era la activa,
// devuelve un identificador fresco para la siguiente conversación.
func (s *ConversationService) DeleteSession(ctx context.Context, sessionID, activeSessionID string) (string, error) {
	if s == nil || s.repo == nil {
		return activeSessionID, ErrConversationServiceNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return activeSessionID, ErrConversationInvalidInput
	}

	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return activeSessionID, err
	}

	if sessionID == activeSessionID {
		return s.NewSessionID(), nil
	}
	return activeSessionID, nil
}
