package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"creative-scribe/internal/events"
	"creative-scribe/internal/llm"
	"creative-scribe/internal/markup"
)

type mockGenerator struct {
	response string
	err      error

	lastSelector string
	lastPrompt   string
}

func (m *mockGenerator) Generate(_ context.Context, selector, prompt string) (string, error) {
	m.lastSelector = selector
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockPublisher struct {
	topics []string
}

func (m *mockPublisher) Publish(topic string) {
	m.topics = append(m.topics, topic)
}

func newChatServiceForTest(repo *mockConversationRepo, gen Generator, pub Publisher) *ChatService {
	logger := zap.NewNop()
	conversations := NewConversationService(repo)
	contextBld := NewContextBuilder(repo, logger)
	return NewChatService(logger, conversations, contextBld, gen, pub)
}

func TestChatService_Send(t *testing.T) {
	t.Run("flujo feliz: genera, formatea, persiste y publica", func(t *testing.T) {
		repo := &mockConversationRepo{}
		gen := &mockGenerator{response: "# Hola\n\ntexto"}
		pub := &mockPublisher{}
		svc := newChatServiceForTest(repo, gen, pub)

		res, err := svc.Send(context.Background(), "u1", "s1", "gpt4o-mini", "hola")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.SessionID != "s1" {
			t.Fatalf("expected session preserved, got %q", res.SessionID)
		}
		if want := markup.Format("# Hola\n\ntexto"); res.Response != want {
			t.Fatalf("expected formatted response %q, got %q", want, res.Response)
		}
		if len(repo.msgs) != 1 {
			t.Fatalf("expected 1 stored message, got %d", len(repo.msgs))
		}
		// Se guarda el prompt original y la respuesta ya formateada.
		if repo.msgs[0].Prompt != "hola" {
			t.Fatalf("expected original prompt stored, got %q", repo.msgs[0].Prompt)
		}
		if repo.msgs[0].Response != res.Response {
			t.Fatal("expected formatted response stored")
		}
		if len(pub.topics) != 1 || pub.topics[0] != events.TopicChatUpdated {
			t.Fatalf("expected one chat.updated publish, got %v", pub.topics)
		}
	})

	t.Run("prompt vacío", func(t *testing.T) {
		svc := newChatServiceForTest(&mockConversationRepo{}, &mockGenerator{}, &mockPublisher{})

		if _, err := svc.Send(context.Background(), "u1", "s1", "gpt35", "   "); err != ErrEmptyPrompt {
			t.Fatalf("expected ErrEmptyPrompt, got %v", err)
		}
	})

	t.Run("session id vacío arranca sesión nueva", func(t *testing.T) {
		repo := &mockConversationRepo{}
		svc := newChatServiceForTest(repo, &mockGenerator{response: "ok"}, &mockPublisher{})

		res, err := svc.Send(context.Background(), "u1", "", "gpt35", "hola")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.SessionID == "" {
			t.Fatal("expected fresh session id")
		}
		if repo.msgs[0].SessionID != res.SessionID {
			t.Fatal("expected message saved under the new session")
		}
	})

	t.Run("el contexto viaja al generador pero no se persiste", func(t *testing.T) {
		repo := &mockConversationRepo{}
		gen := &mockGenerator{response: "r2"}
		svc := newChatServiceForTest(repo, gen, &mockPublisher{})

		if _, err := svc.Send(context.Background(), "u1", "s1", "gpt35", "primero"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Send(context.Background(), "u1", "s1", "gpt35", "segundo"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasPrefix(gen.lastPrompt, "Previous conversation:") {
			t.Fatalf("expected contextual prompt, got %q", gen.lastPrompt)
		}
		if repo.msgs[1].Prompt != "segundo" {
			t.Fatalf("expected bare prompt persisted, got %q", repo.msgs[1].Prompt)
		}
	})

	t.Run("fallo de generación: no persiste ni publica", func(t *testing.T) {
		repo := &mockConversationRepo{}
		pub := &mockPublisher{}
		genErr := &llm.GenerationError{Provider: "openai", Model: "gpt-3.5-turbo", Err: errors.New("timeout")}
		svc := newChatServiceForTest(repo, &mockGenerator{err: genErr}, pub)

		res, err := svc.Send(context.Background(), "u1", "s1", "gpt35", "hola")
		if err == nil {
			t.Fatal("expected error")
		}
		var ge *llm.GenerationError
		if !errors.As(err, &ge) {
			t.Fatalf("expected GenerationError, got %T", err)
		}
		if res.SessionID != "s1" {
			t.Fatalf("expected session id in result, got %q", res.SessionID)
		}
		if len(repo.msgs) != 0 {
			t.Fatal("expected nothing persisted on generation failure")
		}
		if len(pub.topics) != 0 {
			t.Fatal("expected no publish on generation failure")
		}
	})

	t.Run("fallo de persistencia: la respuesta igual se entrega", func(t *testing.T) {
		repo := &mockConversationRepo{saveErr: errors.New("db down")}
		pub := &mockPublisher{}
		svc := newChatServiceForTest(repo, &mockGenerator{response: "ok"}, pub)

		res, err := svc.Send(context.Background(), "u1", "s1", "gpt35", "hola")
		if err != nil {
			t.Fatalf("expected no hard error, got %v", err)
		}
		if res.SaveErr == nil {
			t.Fatal("expected SaveErr set")
		}
		if res.Response == "" {
			t.Fatal("expected response delivered despite save failure")
		}
		if len(pub.topics) != 0 {
			t.Fatal("expected no publish when save failed")
		}
	})
}

func TestChatService_Delete(t *testing.T) {
	repo := &mockConversationRepo{}
	pub := &mockPublisher{}
	svc := newChatServiceForTest(repo, &mockGenerator{}, pub)

	next, err := svc.Delete(context.Background(), "s1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next == "s1" || next == "" {
		t.Fatalf("expected rotated session id, got %q", next)
	}
	if len(pub.topics) != 1 || pub.topics[0] != events.TopicChatUpdated {
		t.Fatalf("expected chat.updated publish, got %v", pub.topics)
	}
}
