package bus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus fans change notifications out to every subscriber in the process.
// Notifications are fire-and-forget signals: the payload is just the topic
// name, and observers re-read the store on delivery.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 16},
			watermill.NewSlogLogger(logger),
		),
	}
}

func (b *Bus) Publish(topic string) error {
	msg := message.NewMessage(watermill.NewUUID(), []byte(topic))
	return b.pubsub.Publish(topic, msg)
}

// Subscribe returns a channel of notifications for the topic. Notifications
// coalesce under a slow receiver; one pending signal is enough since the
// store is re-read on every delivery. The channel closes when ctx ends.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan string, error) {
	msgs, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for msg := range msgs {
			msg.Ack()
			select {
			case out <- topic:
			default:
			}
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
