package quotes

import (
	"github.com/google/uuid"

	"github.com/cyfung/portfolio-helper-sub001/internal/model"
)

// UpdateFunc receives the symbol and the freshly cached record after every
// successful fetch, whether or not the value changed. Callbacks run after
// the cache write is visible to readers, in registration order. A panicking
// callback is recovered and logged; it does not affect the cache or other
// callbacks.
type UpdateFunc func(symbol string, rec model.QuoteRecord)

// OnUpdate registers an update callback and returns its subscription ID.
// The callback receives every subsequent successful-fetch event until
// Shutdown or Unsubscribe.
func (s *Service) OnUpdate(fn UpdateFunc) uuid.UUID {
	id := uuid.New()

	s.state.mu.Lock()
	s.state.subs = append(s.state.subs, subscriber{id: id, fn: fn})
	s.state.mu.Unlock()

	return id
}

// Unsubscribe removes a previously registered callback. It reports whether
// the subscription was found.
func (s *Service) Unsubscribe(id uuid.UUID) bool {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for i, sub := range s.state.subs {
		if sub.id == id {
			s.state.subs = append(s.state.subs[:i], s.state.subs[i+1:]...)
			return true
		}
	}
	return false
}

// notify delivers one update event to a snapshot of the subscriber list.
func (s *Service) notify(subs []subscriber, rec model.QuoteRecord) {
	for _, sub := range subs {
		s.invoke(sub, rec)
	}
}

func (s *Service) invoke(sub subscriber, rec model.QuoteRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("update callback panicked",
				"symbol", rec.Symbol,
				"subscription", sub.id,
				"panic", r,
			)
		}
	}()
	sub.fn(rec.Symbol, rec)
}
