package store

type Store[T any] interface {
	// Store a message
	Store(msg T) error
	// Get all messages, oldest first
	Get() []T
	// Get the number of messages
	Count() int
}

// Last returns the most recently stored message.
func Last[T any](s Store[T]) (T, bool) {
	msgs := s.Get()
	if len(msgs) == 0 {
		var zero T
		return zero, false
	}
	return msgs[len(msgs)-1], true
}
