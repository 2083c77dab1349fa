// internal/handler/event_bus.go
package handler

import (
	"sync"

	"go.uber.org/zap"

	"escp-service/internal/model"
)

// EventBus fans job events out to subscribers. Slow subscribers miss events
// rather than stall the print path.
type EventBus struct {
	subscribers map[model.EventType][]chan model.JobEvent
	events      chan model.JobEvent
	closed      bool
	mutex       sync.RWMutex
	logger      *zap.Logger
}

// NewEventBus creates a new event bus
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[model.EventType][]chan model.JobEvent),
		events:      make(chan model.JobEvent, 1000),
		logger:      logger,
	}
}

// Start distributes events until Stop is called
func (eb *EventBus) Start() {
	for event := range eb.events {
		eb.distributeEvent(event)
	}

	// close subscriber channels so their readers finish
	eb.mutex.Lock()
	defer eb.mutex.Unlock()
	seen := make(map[chan model.JobEvent]bool)
	for _, subs := range eb.subscribers {
		for _, sub := range subs {
			if !seen[sub] {
				seen[sub] = true
				close(sub)
			}
		}
	}
	eb.subscribers = make(map[model.EventType][]chan model.JobEvent)
}

// Stop stops accepting events; Start returns once the queue is drained
func (eb *EventBus) Stop() {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.events)
}

// Publish publishes an event without blocking
func (eb *EventBus) Publish(event model.JobEvent) {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	if eb.closed {
		return
	}

	select {
	case eb.events <- event:
	default:
		eb.logger.Warn("Event bus full, dropping event",
			zap.String("event_type", string(event.EventType)),
			zap.String("job_id", event.JobID.String()),
		)
	}
}

// Subscribe subscribes to the given event types, or to all job events when
// none are given. The returned function cancels the subscription and
// closes the channel.
func (eb *EventBus) Subscribe(eventTypes ...model.EventType) (<-chan model.JobEvent, func()) {
	if len(eventTypes) == 0 {
		eventTypes = model.JobEventTypes
	}

	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	subscriber := make(chan model.JobEvent, 100)
	for _, t := range eventTypes {
		eb.subscribers[t] = append(eb.subscribers[t], subscriber)
	}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			eb.mutex.Lock()
			defer eb.mutex.Unlock()
			found := false
			for _, t := range eventTypes {
				var removed bool
				eb.subscribers[t], removed = removeSubscriber(eb.subscribers[t], subscriber)
				found = found || removed
			}
			// Start already closed it when the bus stopped
			if found {
				close(subscriber)
			}
		})
	}
	return subscriber, unsubscribe
}

func removeSubscriber(subs []chan model.JobEvent, target chan model.JobEvent) ([]chan model.JobEvent, bool) {
	out := subs[:0]
	removed := false
	for _, s := range subs {
		if s == target {
			removed = true
			continue
		}
		out = append(out, s)
	}
	return out, removed
}

// distributeEvent distributes an event to subscribers
func (eb *EventBus) distributeEvent(event model.JobEvent) {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	for _, subscriber := range eb.subscribers[event.EventType] {
		select {
		case subscriber <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
