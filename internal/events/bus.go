package events

import (
	"errors"
	"fmt"
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity. Publishing never
// blocks; events for a full subscriber are dropped.
const subscriberBuffer = 100

// Publisher accepts events for delivery.
type Publisher interface {
	Publish(event *Event) error
}

// Subscription represents a subscription to events
type Subscription struct {
	ch    chan Event
	types []EventType
}

// Bus manages event subscriptions and publishing
type Bus struct {
	mu          sync.RWMutex
	subscribers []*Subscription
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a subscriber for the given types (none means all) and
// returns its channel together with a cancel func that closes it.
func (b *Bus) Subscribe(types ...EventType) (<-chan Event, func()) {
	sub := &Subscription{
		ch:    make(chan Event, subscriberBuffer),
		types: types,
	}

	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() { b.unsubscribe(sub) })
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s == sub {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Publish sends an event to all matching subscribers without blocking.
func (b *Bus) Publish(event *Event) error {
	if event == nil {
		return errors.New("nil event")
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if !matchesTypes(event.Type, sub.types) {
			continue
		}
		select {
		case sub.ch <- *event:
		default:
			// Subscriber is full, drop event to avoid blocking
		}
	}
	return nil
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func matchesTypes(eventType EventType, types []EventType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == eventType {
			return true
		}
	}
	return false
}

// Fanout publishes every event to each of its publishers, in order. All
// publishers are attempted; their errors are joined.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(event *Event) error {
	var errs []error
	for i, p := range f {
		if err := p.Publish(event); err != nil {
			errs = append(errs, fmt.Errorf("publisher %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
