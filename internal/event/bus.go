package event

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Sink consumes published events. Implementations must tolerate being
// called from multiple goroutines.
type Sink interface {
	Handle(evt Event)
}

// Bus fans events out to its sinks asynchronously. Publishing is
// fire-and-forget: a slow, failing or panicking sink never propagates back
// to the operation that emitted the event.
type Bus struct {
	mu    sync.RWMutex
	sinks []Sink
	wg    sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

func (b *Bus) Publish(events ...Event) {
	b.mu.RLock()
	sinks := make([]Sink, len(b.sinks))
	copy(sinks, b.sinks)
	b.mu.RUnlock()

	for _, evt := range events {
		for _, sink := range sinks {
			b.wg.Add(1)
			go func(s Sink, e Event) {
				defer b.wg.Done()
				defer func() {
					if r := recover(); r != nil {
						log.Error().Interface("panic", r).Str("event_type", e.Type).Msg("Event sink panicked")
					}
				}()
				s.Handle(e)
			}(sink, evt)
		}
	}
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and
// in tests.
func (b *Bus) Wait() {
	b.wg.Wait()
}
