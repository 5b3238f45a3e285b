package broadcast

// Publisher fans a named update out to every subscriber.
type Publisher interface {
	Publish(eventType EventType, data any) error
}
