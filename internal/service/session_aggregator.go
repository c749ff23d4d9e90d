package service

import (
	"context"

	"creative-scribe/internal/domain"
	"creative-scribe/internal/repository"
)

// SessionAggregator deriva la lista de sesiones del sidebar a partir del log
// plano de mensajes. No hay agregación del lado del servidor: el scan llega
// completo y se agrupa acá.
type SessionAggregator struct {
	repo repository.ConversationRepository
}

func NewSessionAggregator(repo repository.ConversationRepository) *SessionAggregator {
	return &SessionAggregator{repo: repo}
}

// ListSessions recalcula la vista de sesiones en cada carga.
func (a *SessionAggregator) ListSessions(ctx context.Context, limit int) ([]domain.ChatSession, error) {
	if a == nil || a.repo == nil {
		return nil, ErrConversationServiceNotConfigured
	}

	messages, err := a.repo.ListAllDescending(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateSessions(messages, limit), nil
}

// AggregateSessions agrupa mensajes por session_id en una sola pasada.
//
// La entrada DEBE venir ordenada por timestamp descendente: el primer mensaje
// visto de cada sesión fija el preview (su prompt) y el timestamp de última
// actividad; los siguientes solo incrementan el contador. Con entrada sin
// ordenar el preview queda mal reportado, no se corrige acá.
func AggregateSessions(messages []domain.ConversationMessage, limit int) []domain.ChatSession {
	sessions := make([]domain.ChatSession, 0)
	index := make(map[string]int)

	for _, msg := range messages {
		if pos, seen := index[msg.SessionID]; seen {
			sessions[pos].MessageCount++
			continue
		}
		index[msg.SessionID] = len(sessions)
		sessions = append(sessions, domain.ChatSession{
			SessionID:    msg.SessionID,
			LastMessage:  msg.Prompt,
			Timestamp:    msg.Timestamp,
			MessageCount: 1,
		})
	}

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}
