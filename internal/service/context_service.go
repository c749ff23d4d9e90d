package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"creative-scribe/internal/repository"
)

// contextWindow es la cantidad de intercambios recientes que se incluyen como
// contexto en el siguiente prompt.
const contextWindow = 5

// ContextBuilder arma el prompt contextual con la historia reciente de la
// sesión. Es best effort: ante cualquier fallo de lectura degrada en silencio
// al prompt original para no bloquear al usuario.
type ContextBuilder struct {
	repo   repository.ConversationRepository
	logger *zap.Logger
}

func NewContextBuilder(repo repository.ConversationRepository, logger *zap.Logger) *ContextBuilder {
	return &ContextBuilder{repo: repo, logger: logger}
}

// BuildPrompt antepone los últimos intercambios de la sesión al prompt nuevo.
// Sin historia (o sin sesión) devuelve el prompt sin cambios.
func (b *ContextBuilder) BuildPrompt(ctx context.Context, sessionID, newPrompt string) string {
	if b == nil || b.repo == nil {
		return newPrompt
	}
	if strings.TrimSpace(sessionID) == "" {
		return newPrompt
	}

	recent, err := b.repo.FetchRecent(ctx, sessionID, contextWindow)
	if err != nil {
		// Degradación deliberada: se loguea y se sigue con el prompt pelado.
		if b.logger != nil {
			b.logger.Warn("context fetch failed, sending prompt without history",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
		return newPrompt
	}

	if len(recent) == 0 {
		return newPrompt
	}

	// FetchRecent devuelve descendente; el contexto va en orden cronológico.
	blocks := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		blocks = append(blocks, "User: "+msg.Prompt+"\nAssistant: "+msg.Response)
	}

	return "Previous conversation:\n" + strings.Join(blocks, "\n\n") + "\n\nUser: " + newPrompt
}
