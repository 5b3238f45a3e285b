package broadcast

import "sync"

// Mock is a mock implementation of the Publisher interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PublishFunc func(eventType EventType, data any) error

	PublishCalls []Envelope
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Publish(eventType EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, Envelope{Type: eventType, Data: data})
	if m.PublishFunc != nil {
		return m.PublishFunc(eventType, data)
	}
	return nil
}

// Types returns the event types published so far, in order.
func (m *Mock) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]EventType, len(m.PublishCalls))
	for i, c := range m.PublishCalls {
		types[i] = c.Type
	}
	return types
}

// Last returns the most recent payload published with the given type.
func (m *Mock) Last(eventType EventType) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.PublishCalls) - 1; i >= 0; i-- {
		if m.PublishCalls[i].Type == eventType {
			return m.PublishCalls[i].Data, true
		}
	}
	return nil, false
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}
