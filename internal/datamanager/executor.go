package datamanager

import (
	"time"

	"github.com/mvhien/learnhub/internal/event"
	"github.com/mvhien/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// operation describes one logical mutation for the executor: an optional
// pre-check validator, the transactional body, the retry flag and the events
// to publish once the transaction commits.
type operation[T any] struct {
	name      string
	validate  func() error
	execute   func(tx repository.Store) (T, error)
	retryable bool
	events    func(out T) []event.Event
}

// run is the single chokepoint for every mutation: validate outside any
// transaction, execute inside exactly one transaction per attempt, retry
// only transient failures of retryable operations, publish events only
// after a durable commit.
func run[T any](m *Manager, op operation[T]) (T, error) {
	var zero T

	if op.validate != nil {
		if err := op.validate(); err != nil {
			log.Debug().Str("operation", op.name).Str("kind", string(KindOf(err))).Msg("Validation rejected operation")
			return zero, err
		}
	}

	delay := m.cfg.BaseBackoff
	for attempt := 0; ; attempt++ {
		var out T
		err := m.store.Atomic(func(tx repository.Store) error {
			var execErr error
			out, execErr = op.execute(tx)
			return execErr
		})
		if err == nil {
			if op.events != nil {
				m.bus.Publish(op.events(out)...)
			}
			return out, nil
		}

		// In-transaction re-checks surface kinded errors directly.
		if KindOf(err) != "" {
			return zero, err
		}
		// A constraint violation at commit means validation passed but a
		// concurrent writer won the race. Map it to the validation
		// vocabulary and never retry it.
		if kind, ok := constraintKind(err); ok {
			log.Warn().Err(err).Str("operation", op.name).Str("kind", string(kind)).
				Msg("Constraint violation after passing validation")
			return zero, wrapError(kind, err, "%s lost a concurrent race", op.name)
		}
		if !op.retryable || !isTransient(err) || attempt >= m.cfg.MaxRetries {
			log.Error().Err(err).Str("operation", op.name).Int("attempt", attempt).Msg("Operation failed")
			return zero, wrapError(KindOperationFailed, err, "%s failed", op.name)
		}

		log.Warn().Err(err).Str("operation", op.name).Int("attempt", attempt).
			Dur("backoff", delay).Msg("Transient failure, retrying")
		m.sleep(delay)
		delay *= 2
		if delay > m.cfg.MaxBackoff {
			delay = m.cfg.MaxBackoff
		}
	}
}

func (m *Manager) sleep(d time.Duration) {
	if m.sleepFn != nil {
		m.sleepFn(d)
		return
	}
	time.Sleep(d)
}
