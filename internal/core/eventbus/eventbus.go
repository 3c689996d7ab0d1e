// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within sitecmd. Delivery is best
// effort: publishing never blocks, and events are dropped (with a
// hook) when the buffer is full.
package eventbus

import (
	"context"
	"sync"
)

// Event identifies an event type on the bus.
type Event string

// All event types, sorted A-Z.
const (
	EventItemCarriedForward    Event = "item.carried-forward"
	EventItemCreated           Event = "item.created"
	EventItemDeferred          Event = "item.deferred"
	EventItemTransitioned      Event = "item.transitioned"
	EventNotificationPublished Event = "notification.published"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus is a buffered in-process pub/sub bus. Subscribers run on
// the bus goroutine; a panicking subscriber is isolated and reported
// through the OnPanic hook.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		stop: make(chan struct{}),
		done: make(chan struct{}),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until the context is cancelled or Stop is
// called, delivering whatever is still buffered before returning. It
// is meant to run on its own goroutine.
func (bus *EventBus) Start(ctx context.Context) {
	defer close(bus.done)
	for {
		select {
		case <-ctx.Done():
			bus.drain()
			return
		case <-bus.stop:
			bus.drain()
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

// Stop shuts down the dispatch loop and blocks until every buffered
// event has been delivered. In a short-lived CLI process the final
// publishes land just before exit; Stop guarantees their subscribers
// run before the caller tears anything else down. Stop requires that
// Start is running; it blocks until the loop exits.
func (bus *EventBus) Stop() {
	bus.stopOnce.Do(func() { close(bus.stop) })
	<-bus.done
}

// drain delivers everything buffered at shutdown.
func (bus *EventBus) drain() {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		default:
			return
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

// subscribe registers an untyped handler. Used by the typed
// Subscribe* methods.
func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.runOnSubscribe(event)
}

func (bus *EventBus) runOnSubscribe(event Event) {
	bus.hooks.mu.RLock()
	hooks := make([]func(Event), len(bus.hooks.onSubscribe))
	copy(hooks, bus.hooks.onSubscribe)
	bus.hooks.mu.RUnlock()
	for _, fn := range hooks {
		fn(event)
	}
}
