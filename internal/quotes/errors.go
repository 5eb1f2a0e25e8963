package quotes

import (
	"errors"
	"fmt"
)

// Argument and lifecycle errors reported synchronously to callers.
var (
	// ErrStopped is returned when an operation that mutates the service is
	// attempted after Shutdown.
	ErrStopped = errors.New("quote service is stopped")

	// ErrNoSymbols is returned for an empty symbol set.
	ErrNoSymbols = errors.New("no symbols given")

	// ErrEmptySymbol is returned when a symbol is empty or all whitespace.
	ErrEmptySymbol = errors.New("empty symbol")

	// ErrInvalidInterval is returned for a non-positive polling interval.
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// FetchError reports a failed remote lookup for a single symbol. It is the
// error type QuoteFetcher implementations wrap network, status, and payload
// failures in.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
