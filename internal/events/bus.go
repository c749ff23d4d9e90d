// Package events implementa el canal de difusión interno que reemplaza a los
// CustomEvent del navegador: señales sin payload, semántica de
// dispara-y-recarga. Los suscriptores se registran explícitamente.
package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Tópicos conocidos del bus.
const (
	TopicChatUpdated    = "chat.updated"
	TopicProfileUpdated = "profile.updated"
)

// Bus envuelve un pub/sub in-process. Publicar nunca bloquea al publicador
// más allá del buffer; los mensajes no llevan payload.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 16},
		watermill.NewStdLogger(false, false),
	)
	return &Bus{pubSub: pubSub, logger: logger}
}

// Publish emite una señal en el tópico. Un fallo se loguea y se descarta:
// perder una notificación de refresco no es fatal.
func (b *Bus) Publish(topic string) {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	if err := b.pubSub.Publish(topic, msg); err != nil && b.logger != nil {
		b.logger.Warn("event publish failed", zap.String("topic", topic), zap.Error(err))
	}
}

// Subscribe devuelve el canal de señales del tópico. El canal se cierra
// cuando el contexto termina.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
