// Package broker fans out gateway notifications that arrive with no
// registered waiter — ambient frames such as ErrorNtf or
// NodeStatePositionChangedNtf — to any number of subscribers (the embedded
// TUI, and any future streaming REST endpoint).
//
// The package itself was not part of the retrieved reference material; its
// shape is inferred from how a Broker's Subscribe/Publish pair is used by
// consuming code elsewhere in the corpus (a per-subscriber buffered channel,
// an unsubscribe closure, and a non-blocking publish that drops rather than
// stalls a slow subscriber).
package broker

import (
	"sync"

	"github.com/google/uuid"
	"github.com/veluxklf/klf200d/protocol"
)

// Broker fans out protocol.Message values to subscribers.
type Broker struct {
	mu          sync.Mutex
	capacity    int
	subscribers map[uuid.UUID]chan protocol.Message
}

// New creates a Broker whose subscriber channels are buffered to capacity
// messages each.
func New(capacity int) *Broker {
	return &Broker{
		capacity:    capacity,
		subscribers: make(map[uuid.UUID]chan protocol.Message),
	}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The returned channel is closed once unsubscribe is
// called.
func (b *Broker) Subscribe() (<-chan protocol.Message, func()) {
	id := uuid.New()
	ch := make(chan protocol.Message, b.capacity)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if existing, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(existing)
		}
	}
	return ch, unsub
}

// Publish delivers msg to every current subscriber. A subscriber whose
// buffer is full is skipped rather than blocking the publisher — this is
// ambient notification traffic, not a guaranteed-delivery stream.
func (b *Broker) Publish(msg protocol.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports how many subscribers are currently attached.
// Exposed for tests.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
