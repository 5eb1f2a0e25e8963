package quotes

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/cyfung/portfolio-helper-sub001/internal/model"
)

// DefaultRefreshConcurrency bounds the number of simultaneous fetches
// during a RefreshAll pass.
const DefaultRefreshConcurrency = 8

// Service is the polling quote cache. Construct instances with New; each
// owns its own cache, scheduler, and subscriber registry.
type Service struct {
	fetcher     QuoteFetcher
	logger      *slog.Logger
	concurrency int

	state *serviceState
	sched *gocron.Scheduler
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRefreshConcurrency sets the fetch concurrency used by RefreshAll.
func WithRefreshConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a Service backed by the given fetcher. The service is Idle
// until StartPolling is called.
func New(fetcher QuoteFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		logger:      slog.Default(),
		concurrency: DefaultRefreshConcurrency,
		state:       newState(),
		sched:       gocron.NewScheduler(time.UTC),
	}
	s.sched.SingletonModeAll()

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register starts tracking the given symbols, inserting a placeholder
// record for any symbol not already present. Already-tracked symbols are
// left untouched. Registration alone does not begin polling, but while the
// service is polling every newly registered symbol gets its own job.
func (s *Service) Register(symbols ...string) error {
	if err := validateSymbols(symbols); err != nil {
		return err
	}

	s.state.mu.Lock()
	if s.state.phase == phaseStopped {
		s.state.mu.Unlock()
		return ErrStopped
	}

	var added []string
	for _, sym := range symbols {
		if _, ok := s.state.records[sym]; ok {
			continue
		}
		s.state.records[sym] = model.NewPlaceholder(sym)
		added = append(added, sym)
	}
	polling := s.state.phase == phasePolling
	interval := s.state.interval
	s.state.mu.Unlock()

	if len(added) == 0 {
		return nil
	}

	if polling {
		for _, sym := range added {
			s.schedule(sym, interval)
		}
	}

	s.logger.Info("tracking symbols",
		"added", added,
		"polling", polling,
	)
	return nil
}

// Seed inserts last-known records for symbols not already tracked, keeping
// each record's own UpdatedAt. Used to warm the cache from persisted state
// before polling starts. Already-tracked symbols are left untouched.
func (s *Service) Seed(records ...model.QuoteRecord) error {
	symbols := make([]string, len(records))
	for i, rec := range records {
		symbols[i] = rec.Symbol
	}
	if err := validateSymbols(symbols); err != nil {
		return err
	}

	s.state.mu.Lock()
	if s.state.phase == phaseStopped {
		s.state.mu.Unlock()
		return ErrStopped
	}

	var added []string
	for _, rec := range records {
		if _, ok := s.state.records[rec.Symbol]; ok {
			continue
		}
		s.state.records[rec.Symbol] = rec
		added = append(added, rec.Symbol)
	}
	polling := s.state.phase == phasePolling
	interval := s.state.interval
	s.state.mu.Unlock()

	if polling {
		for _, sym := range added {
			s.schedule(sym, interval)
		}
	}

	if len(added) > 0 {
		s.logger.Info("seeded cached quotes", "symbols", added)
	}
	return nil
}

// StartPolling registers the given symbols and, if the service is Idle,
// begins the background scheduler with the given interval. Calling it again
// while polling adds any new symbols; the interval of the first call wins
// and later intervals are ignored with a warning. Returns ErrStopped after
// Shutdown.
func (s *Service) StartPolling(symbols []string, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	if err := s.Register(symbols...); err != nil {
		return err
	}

	s.state.mu.Lock()
	if s.state.phase == phaseStopped {
		s.state.mu.Unlock()
		return ErrStopped
	}

	if s.state.phase == phasePolling {
		// Register above already scheduled any new symbols.
		ignored := interval != s.state.interval
		current := s.state.interval
		s.state.mu.Unlock()
		if ignored {
			s.logger.Warn("already polling, interval change ignored",
				"active_interval", current,
				"requested_interval", interval,
			)
		}
		return nil
	}

	// Idle -> Polling. Scheduling and StartAsync happen inside the critical
	// section so Shutdown can never observe a half-started scheduler.
	s.state.phase = phasePolling
	s.state.interval = interval
	scheduled := 0
	for sym := range s.state.records {
		s.schedule(sym, interval)
		scheduled++
	}
	s.sched.StartAsync()
	s.state.schedRunning = true
	s.state.mu.Unlock()

	s.logger.Info("polling started",
		"symbols", scheduled,
		"interval", interval,
	)
	return nil
}

// schedule creates the repeating per-symbol job. Jobs for different symbols
// fire independently; overlap for a single symbol is prevented in tick.
func (s *Service) schedule(symbol string, interval time.Duration) {
	if _, err := s.sched.Every(interval).Tag(symbol).Do(s.tick, symbol); err != nil {
		s.logger.Error("failed to schedule symbol", "symbol", symbol, "err", err)
	}
}

// tick runs one fetch-and-update cycle for a single symbol.
func (s *Service) tick(symbol string) {
	if !s.state.beginTick(symbol) {
		s.logger.Debug("previous fetch still in flight, skipping tick", "symbol", symbol)
		return
	}
	defer s.state.endTick(symbol)

	// The fetcher enforces its own timeout.
	quote, err := s.fetcher.Fetch(context.Background(), symbol)
	if err != nil {
		s.logger.Warn("fetch failed, keeping last value", "symbol", symbol, "err", err)
		return
	}

	rec, subs, ok := s.state.commit(symbol, quote)
	if !ok {
		s.logger.Debug("service stopped, discarding fetch result", "symbol", symbol)
		return
	}

	s.notify(subs, rec)
}

// RefreshAll runs one immediate fetch-and-update cycle for every tracked
// symbol, at most DefaultRefreshConcurrency (or the configured limit) at a
// time. Per-symbol failures are logged and skipped like any other tick; the
// returned error is non-nil only for a stopped service or a cancelled
// context.
func (s *Service) RefreshAll(ctx context.Context) error {
	if s.state.currentPhase() == phaseStopped {
		return ErrStopped
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, sym := range s.state.tracked() {
		sym := sym
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			s.tick(sym)
			return nil
		})
	}

	return g.Wait()
}

// Get returns the current cached record for a symbol. It reports false only
// for symbols that were never registered.
func (s *Service) Get(symbol string) (model.QuoteRecord, bool) {
	return s.state.get(symbol)
}

// GetAll returns the current cached record for each requested symbol.
// Unregistered symbols resolve to an all-absent record.
func (s *Service) GetAll(symbols []string) map[string]model.QuoteRecord {
	return s.state.getAll(symbols)
}

// Tracked returns all tracked symbols in sorted order.
func (s *Service) Tracked() []string {
	return s.state.tracked()
}

// IsPolling reports whether the background scheduler is running.
func (s *Service) IsPolling() bool {
	return s.state.currentPhase() == phasePolling
}

// State returns the lifecycle state: "idle", "polling", or "stopped".
func (s *Service) State() string {
	return s.state.currentPhase().String()
}

// Shutdown stops the scheduler, discards pending fetch results, drops all
// subscriptions, and closes the fetcher. It is idempotent. Reads keep
// serving the last cached values after shutdown.
func (s *Service) Shutdown() error {
	s.state.mu.Lock()
	if s.state.phase == phaseStopped {
		s.state.mu.Unlock()
		return nil
	}
	wasRunning := s.state.schedRunning
	s.state.phase = phaseStopped
	s.state.schedRunning = false
	s.state.subs = nil
	s.state.mu.Unlock()

	if wasRunning {
		s.sched.Stop()
	}

	if err := s.fetcher.Close(); err != nil {
		s.logger.Error("failed to close fetcher", "err", err)
		return err
	}

	s.logger.Info("quote service stopped")
	return nil
}

func validateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return ErrNoSymbols
	}
	for _, sym := range symbols {
		if strings.TrimSpace(sym) == "" {
			return ErrEmptySymbol
		}
	}
	return nil
}
