package refresh

import (
	"log/slog"
	"sync"
)

// Subscription receives refresh signals on C. Signals coalesce: while one is
// pending, further publishes are absorbed.
type Subscription struct {
	C <-chan struct{}

	ch chan struct{}
}

// Bus broadcasts "state changed, recompute" signals to every subscriber.
// It replaces a shared counter that independent screens polled.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	count  uint64
	logger *slog.Logger
}

// NewBus creates a new Bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber.
func (b *Bus) Subscribe() *Subscription {
	ch := make(chan struct{}, 1)
	s := &Subscription{C: ch, ch: ch}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(s *Subscription) {
	b.mu.Lock()
	if _, ok := b.subs[s]; ok {
		delete(b.subs, s)
		close(s.ch)
	}
	b.mu.Unlock()
}

// Publish signals every subscriber without blocking.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.count++
	for s := range b.subs {
		select {
		case s.ch <- struct{}{}:
		default:
			// Signal already pending
		}
	}
	b.logger.Debug("refresh signal", "count", b.count, "subscribers", len(b.subs))
}

// Count returns the number of signals published so far.
func (b *Bus) Count() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
