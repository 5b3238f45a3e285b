package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventRecalculate asks the service to run a standings recalculation pass.
	EventRecalculate EventType = "recalculate"
)

// RecalculateRequest is the msgpack payload of an EventRecalculate message.
type RecalculateRequest struct {
	Reason string `msgpack:"reason"`
}

// PushRequest is the JSON body Pub/Sub posts to a push subscription endpoint.
// Message.Data is base64 in the JSON and decoded by encoding/json.
type PushRequest struct {
	Message struct {
		Data       []byte            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
