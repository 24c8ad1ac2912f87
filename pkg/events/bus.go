package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler receives one event value per call. The bus consumes no return
// value; a panicking handler is recovered and logged.
type Handler func(Event)

type subscription struct {
	id      int64
	handler Handler
}

// Bus dispatches events synchronously to subscribers, keyed by event kind.
// Dispatch is best-effort: a handler that panics must not prevent delivery
// to other handlers or abort the publishing operation.
type Bus struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	nextID int64
	subs   map[Kind][]subscription
}

// NewBus creates a bus. A nil logger disables panic logging.
func NewBus(logger *zerolog.Logger) *Bus {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Bus{
		logger: *logger,
		subs:   make(map[Kind][]subscription),
	}
}

// Subscribe registers a handler for one event kind and returns a token
// for Unsubscribe.
func (b *Bus) Subscribe(kind Kind, h Handler) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscription{id: b.nextID, handler: h})
	return b.nextID
}

// SubscribeAll registers a handler for every event kind.
func (b *Bus) SubscribeAll(h Handler) []int64 {
	tokens := make([]int64, 0, len(AllKinds))
	for _, kind := range AllKinds {
		tokens = append(tokens, b.Subscribe(kind, h))
	}
	return tokens
}

// Unsubscribe removes the handler registered under token for kind.
// Unknown tokens are ignored.
func (b *Bus) Unsubscribe(kind Kind, token int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == token {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every subscriber of its kind, in subscription
// order, on the caller's goroutine.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs[e.Kind()]
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(s, e)
	}
}

func (b *Bus) deliver(s subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Stringer("event", e.Kind()).
				Interface("panic", r).
				Msg("event subscriber panicked")
		}
	}()
	s.handler(e)
}
