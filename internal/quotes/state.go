package quotes

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cyfung/portfolio-helper-sub001/internal/model"
)

// phase is the lifecycle state of the service.
type phase int

const (
	phaseIdle phase = iota
	phasePolling
	phaseStopped
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phasePolling:
		return "polling"
	case phaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// subscriber is one registered update callback.
type subscriber struct {
	id uuid.UUID
	fn UpdateFunc
}

// serviceState holds all mutable state behind a single lock: the cache,
// the subscriber registry, the lifecycle phase, and the in-flight tick
// markers. Nothing here may block; the lock is never held across a fetch.
type serviceState struct {
	mu           sync.RWMutex
	phase        phase
	interval     time.Duration
	schedRunning bool
	records      map[string]model.QuoteRecord
	subs         []subscriber
	inFlight     map[string]bool
}

func newState() *serviceState {
	return &serviceState{
		records:  make(map[string]model.QuoteRecord),
		inFlight: make(map[string]bool),
	}
}

// beginTick marks a symbol's tick as running. It reports false if a tick
// for the same symbol is already in flight, in which case the caller must
// skip the cycle.
func (st *serviceState) beginTick(symbol string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.inFlight[symbol] {
		return false
	}
	st.inFlight[symbol] = true
	return true
}

func (st *serviceState) endTick(symbol string) {
	st.mu.Lock()
	delete(st.inFlight, symbol)
	st.mu.Unlock()
}

// commit atomically replaces the cache entry for symbol with a record built
// from q and snapshots the subscriber list for notification. It reports
// false, writing nothing, if the service has been stopped: results of
// fetches in flight at shutdown are discarded.
func (st *serviceState) commit(symbol string, q model.Quote) (model.QuoteRecord, []subscriber, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.phase == phaseStopped {
		return model.QuoteRecord{}, nil, false
	}

	rec := model.QuoteRecord{
		Symbol:        symbol,
		Price:         q.Price,
		PreviousClose: q.PreviousClose,
		UpdatedAt:     time.Now(),
	}
	st.records[symbol] = rec

	return rec, slices.Clone(st.subs), true
}

func (st *serviceState) get(symbol string) (model.QuoteRecord, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	rec, ok := st.records[symbol]
	return rec, ok
}

// getAll resolves every requested symbol. Symbols that were never
// registered get an all-absent record rather than being omitted, so callers
// can always resolve a known input set.
func (st *serviceState) getAll(symbols []string) map[string]model.QuoteRecord {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make(map[string]model.QuoteRecord, len(symbols))
	for _, sym := range symbols {
		if rec, ok := st.records[sym]; ok {
			out[sym] = rec
			continue
		}
		out[sym] = model.QuoteRecord{Symbol: sym}
	}
	return out
}

func (st *serviceState) tracked() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]string, 0, len(st.records))
	for sym := range st.records {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

func (st *serviceState) currentPhase() phase {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.phase
}
