package streaming

import (
	"fmt"
	"sync"
	"time"

	"d3console/internal/log"
)

// Handler receives events on the goroutine that fired them.
type Handler func(Event)

type subscription struct {
	id      string
	kind    Kind
	all     bool
	handler Handler
}

// EventBus delivers events to subscribers in subscription order
type EventBus struct {
	subscribers []subscription
	mutex       sync.RWMutex
	nextID      int
}

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return &EventBus{nextID: 1}
}

// Subscribe registers a handler for one event kind
func (eb *EventBus) Subscribe(kind Kind, handler Handler) string {
	return eb.add(subscription{kind: kind, handler: handler})
}

// SubscribeAll registers a handler for every event kind, raw lines included
func (eb *EventBus) SubscribeAll(handler Handler) string {
	return eb.add(subscription{all: true, handler: handler})
}

func (eb *EventBus) add(sub subscription) string {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	sub.id = fmt.Sprintf("sub_%d", eb.nextID)
	eb.nextID++
	eb.subscribers = append(eb.subscribers, sub)

	return sub.id
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (eb *EventBus) Unsubscribe(subscriptionID string) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	for i, sub := range eb.subscribers {
		if sub.id == subscriptionID {
			eb.subscribers = append(eb.subscribers[:i:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Fire synchronously delivers an event to all matching subscribers
func (eb *EventBus) Fire(event Event) {
	eb.mutex.RLock()
	var handlers []Handler
	for _, sub := range eb.subscribers {
		if sub.all || sub.kind == event.Kind {
			handlers = append(handlers, sub.handler)
		}
	}
	eb.mutex.RUnlock()

	if len(handlers) == 0 {
		return
	}

	// Set timestamp if not already set
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("Event handler panicked", "kind", event.Kind, "panic", r)
				}
			}()
			handler(event)
		}()
	}
}

// GetSubscriberCount returns the number of handlers that receive kind
func (eb *EventBus) GetSubscriberCount(kind Kind) int {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	count := 0
	for _, sub := range eb.subscribers {
		if sub.all || sub.kind == kind {
			count++
		}
	}
	return count
}

// Clear removes all subscribers (useful for testing)
func (eb *EventBus) Clear() {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	eb.subscribers = nil
}
