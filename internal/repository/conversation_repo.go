package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creative-scribe/internal/domain"
)

// ConversationRepository define el contrato de persistencia para la tabla
// plana de conversaciones. session_id no es único por fila; message_id sí.
type ConversationRepository interface {
	Save(ctx context.Context, msg domain.ConversationMessage) error
	// FetchRecent devuelve hasta limit mensajes de la sesión, más recientes primero.
	FetchRecent(ctx context.Context, sessionID string, limit int) ([]domain.ConversationMessage, error)
	// FetchAll devuelve todos los mensajes de la sesión en orden cronológico.
	FetchAll(ctx context.Context, sessionID string) ([]domain.ConversationMessage, error)
	// DeleteSession borra todos los mensajes de la sesión. Idempotente.
	DeleteSession(ctx context.Context, sessionID string) error
	// ListAllDescending devuelve todos los mensajes de todas las sesiones,
	// más recientes primero. Solo lo usa el agregador de sesiones.
	ListAllDescending(ctx context.Context) ([]domain.ConversationMessage, error)
}

// PgConversationRepository implementa ConversationRepository usando pgxpool.
type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

const conversationColumns = `id, user_id, session_id, message_id, prompt, response, timestamp`

func (r *PgConversationRepository) Save(ctx context.Context, msg domain.ConversationMessage) error {
	const query = `
		INSERT INTO conversations (user_id, session_id, message_id, prompt, response, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var userID interface{}
	if msg.UserID != "" {
		userID = msg.UserID
	}

	_, err := r.pool.Exec(ctx, query,
		userID,
		msg.SessionID,
		msg.MessageID,
		msg.Prompt,
		msg.Response,
		msg.Timestamp,
	)
	return persistenceErr("save", err)
}

func (r *PgConversationRepository) FetchRecent(ctx context.Context, sessionID string, limit int) ([]domain.ConversationMessage, error) {
	const query = `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE session_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, persistenceErr("fetch_recent", err)
	}
	return scanConversationRows(rows, "fetch_recent")
}

func (r *PgConversationRepository) FetchAll(ctx context.Context, sessionID string) ([]domain.ConversationMessage, error) {
	const query = `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE session_id = $1
		ORDER BY timestamp ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, persistenceErr("fetch_all", err)
	}
	return scanConversationRows(rows, "fetch_all")
}

func (r *PgConversationRepository) DeleteSession(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM conversations WHERE session_id = $1`

	// Borrar una sesión inexistente no es error: Exec con cero filas basta.
	_, err := r.pool.Exec(ctx, query, sessionID)
	return persistenceErr("delete_session", err)
}

func (r *PgConversationRepository) ListAllDescending(ctx context.Context) ([]domain.ConversationMessage, error) {
	const query = `
		SELECT ` + conversationColumns + `
		FROM conversations
		ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, persistenceErr("list_all", err)
	}
	return scanConversationRows(rows, "list_all")
}

func scanConversationRows(rows pgx.Rows, op string) ([]domain.ConversationMessage, error) {
	defer rows.Close()

	var messages []domain.ConversationMessage
	for rows.Next() {
		var msg domain.ConversationMessage
		var userID *string

		err := rows.Scan(
			&msg.ID,
			&userID,
			&msg.SessionID,
			&msg.MessageID,
			&msg.Prompt,
			&msg.Response,
			&msg.Timestamp,
		)
		if err != nil {
			return nil, persistenceErr(op, err)
		}
		if userID != nil {
			msg.UserID = *userID
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceErr(op, err)
	}

	return messages, nil
}
