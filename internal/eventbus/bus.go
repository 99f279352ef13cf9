// Package eventbus implements a typed intra-process publish/subscribe
// bus: the single coupling surface between the engine, its managers,
// and the socket gateway.
package eventbus

import (
	"fmt"
	"sync"
)

// Handle identifies a subscription so it can be removed with Off: an
// opaque handle rather than comparing method references.
type Handle uint64

// Handler receives an event's payload. Handlers run synchronously, in
// registration order, on the emitter's goroutine.
type Handler func(payload interface{})

type subscription struct {
	handle  Handle
	handler Handler
}

// PanicRecoverer is invoked (instead of a bare log) when a handler
// panics, so callers can route it through their own logger.
type PanicRecoverer func(event string, r interface{})

// Bus is a typed pub/sub bus with two listener buckets per event: global
// listeners (On) and round-scoped listeners (OnRound) that are all
// cleared together at round end via ClearRoundListeners.
type Bus struct {
	mu          sync.Mutex
	nextHandle  Handle
	global      map[string][]subscription
	roundScoped map[string][]subscription
	OnPanic     PanicRecoverer
}

func New() *Bus {
	return &Bus{
		global:      make(map[string][]subscription),
		roundScoped: make(map[string][]subscription),
	}
}

// On registers a durable listener for event, returning a handle usable
// with Off.
func (b *Bus) On(event string, handler Handler) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextHandle++
	h := b.nextHandle
	b.global[event] = append(b.global[event], subscription{handle: h, handler: handler})
	return h
}

// OnRound registers a listener that is removed in bulk by
// ClearRoundListeners (used for per-round mode/role hooks, e.g. a
// Vampire's bloodlust-timeout listener).
func (b *Bus) OnRound(event string, handler Handler) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextHandle++
	h := b.nextHandle
	b.roundScoped[event] = append(b.roundScoped[event], subscription{handle: h, handler: handler})
	return h
}

// Off removes a single subscription by handle, searching both buckets.
func (b *Bus) Off(handle Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for event, subs := range b.global {
		b.global[event] = removeHandle(subs, handle)
	}
	for event, subs := range b.roundScoped {
		b.roundScoped[event] = removeHandle(subs, handle)
	}
}

func removeHandle(subs []subscription, handle Handle) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.handle != handle {
			out = append(out, s)
		}
	}
	return out
}

// ClearRoundListeners bulk-removes every round-scoped subscription,
// called by GameEngine.endRound.
func (b *Bus) ClearRoundListeners() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roundScoped = make(map[string][]subscription)
}

// Emit invokes every listener (global then round-scoped) registered for
// event, in registration order, synchronously on the caller's goroutine.
// A panicking handler is recovered and logged; it never prevents later
// handlers in the same Emit from running.
func (b *Bus) Emit(event string, payload interface{}) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.global[event])+len(b.roundScoped[event]))
	for _, s := range b.global[event] {
		handlers = append(handlers, s.handler)
	}
	for _, s := range b.roundScoped[event] {
		handlers = append(handlers, s.handler)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		b.invoke(event, h, payload)
	}
}

func (b *Bus) invoke(event string, handler Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			if b.OnPanic != nil {
				b.OnPanic(event, r)
				return
			}
			fmt.Printf("eventbus: handler for %q panicked: %v\n", event, r)
		}
	}()
	handler(payload)
}
