package broadcast

// Publisher pushes an event to every observer of topic.
type Publisher interface {
	Publish(topic string, event Event) error
}

// Deliverer hands an already encoded event to local observers and reports how
// many received it.
type Deliverer interface {
	Deliver(topic string, data []byte) int
}
