package quotes

import (
	"context"

	"github.com/cyfung/portfolio-helper-sub001/internal/model"
)

// QuoteFetcher performs one remote lookup per call.
//
// Fetch must be safe for concurrent calls with different symbols and must
// enforce its own bounded timeout; the service does not impose one. Close
// releases underlying resources and must be idempotent.
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbol string) (model.Quote, error)
	Close() error
}

// FetcherFunc is a function adapter for QuoteFetcher with a no-op Close.
type FetcherFunc func(ctx context.Context, symbol string) (model.Quote, error)

func (f FetcherFunc) Fetch(ctx context.Context, symbol string) (model.Quote, error) {
	return f(ctx, symbol)
}

func (f FetcherFunc) Close() error { return nil }
