package domain

import "time"

// ConversationMessage es un intercambio persistido (prompt del usuario +
// respuesta del modelo). Inmutable: solo se inserta o se borra por sesión.
type ConversationMessage struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id"`
	MessageID string    `json:"message_id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession es una vista derivada sobre los mensajes que comparten
// session_id. Nunca se persiste; se recalcula en cada carga.
type ChatSession struct {
	SessionID    string    `json:"session_id"`
	LastMessage  string    `json:"last_message"`
	Timestamp    time.Time `json:"timestamp"`
	MessageCount int       `json:"message_count"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage es la forma que consume la UI al reconstruir una sesión:
// cada ConversationMessage se expande en un par user/assistant.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
