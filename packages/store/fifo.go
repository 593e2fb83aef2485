package store

import "sync"

// FIFO keeps the last size messages. Safe for concurrent use.
type FIFO[T any] struct {
	msgs     []T
	size     int
	msgsLock sync.RWMutex
}

func (l *FIFO[T]) Store(msg T) error {
	l.msgsLock.Lock()
	defer l.msgsLock.Unlock()

	l.msgs = append(l.msgs, msg)
	if len(l.msgs) > l.size {
		l.msgs = l.msgs[len(l.msgs)-l.size:]
	}
	return nil
}

func (l *FIFO[T]) Get() []T {
	l.msgsLock.RLock()
	defer l.msgsLock.RUnlock()

	msgs := make([]T, len(l.msgs))
	copy(msgs, l.msgs)
	return msgs
}

func (l *FIFO[T]) Count() int {
	l.msgsLock.RLock()
	defer l.msgsLock.RUnlock()
	return len(l.msgs)
}

func NewFIFO[T any](size int) Store[T] {
	if size < 1 {
		size = 1
	}
	return &FIFO[T]{
		msgs: make([]T, 0, size),
		size: size,
	}
}
