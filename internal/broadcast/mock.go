package broadcast

import "sync"

// Mock is a Publisher that records every call. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PublishFunc func(topic string, event Event) error

	PublishCalls []PublishCall
}

// PublishCall holds the arguments for a call to Publish.
type PublishCall struct {
	Topic string
	Event Event
}

var _ Publisher = (*Mock)(nil)

// NewMock creates a new mock publisher.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Publish(topic string, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Topic: topic, Event: event})
	if m.PublishFunc != nil {
		return m.PublishFunc(topic, event)
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *Mock) Calls() []PublishCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishCall(nil), m.PublishCalls...)
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}
