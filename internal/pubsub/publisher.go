package pubsub

import (
	"github.com/mauv0809/matchday/internal/broadcast"
)

// Publisher forwards league updates to Pub/Sub, one topic per update type.
type Publisher struct {
	client PubSubClient
	prefix string
}

var _ broadcast.Publisher = (*Publisher)(nil)

// NewPublisher publishes every update type t to the topic "<prefix>-<t>".
func NewPublisher(client PubSubClient, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix}
}

// Topic returns the topic name used for an update type.
func (p *Publisher) Topic(eventType broadcast.EventType) EventType {
	return p.topic(string(eventType))
}

func (p *Publisher) topic(name string) EventType {
	return EventType(p.prefix + "-" + name)
}

// RequestRecalculate queues a recalculation pass on the "<prefix>-recalculate"
// topic. The push subscription delivers it back to /pubsub/recalculate.
func (p *Publisher) RequestRecalculate(reason string) error {
	return p.client.SendMessage(p.topic(string(EventRecalculate)), RecalculateRequest{Reason: reason})
}

func (p *Publisher) Publish(eventType broadcast.EventType, data any) error {
	return p.client.SendMessage(p.Topic(eventType), data)
}
