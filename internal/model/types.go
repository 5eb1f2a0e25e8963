package model

import "time"

// Quote is the value returned by a single remote lookup.
//
// Both fields are optional: a source that omits a field yields a nil
// pointer, never a sentinel number. Pointees are treated as immutable once
// a Quote has been handed to the service.
type Quote struct {
	// Price is the current market price.
	Price *float64

	// PreviousClose is the prior session's closing price.
	PreviousClose *float64
}

// QuoteRecord is the cached entry for one tracked symbol.
type QuoteRecord struct {
	Symbol        string
	Price         *float64
	PreviousClose *float64

	// UpdatedAt is the time of the last successful fetch, or of insertion
	// for a record that has never been fetched. Zero for records
	// synthesized on behalf of symbols that were never registered.
	UpdatedAt time.Time
}

// NewPlaceholder returns the record inserted at registration, before any
// successful fetch: all value fields absent, UpdatedAt set to now.
func NewPlaceholder(symbol string) QuoteRecord {
	return QuoteRecord{
		Symbol:    symbol,
		UpdatedAt: time.Now(),
	}
}

// HasQuote reports whether the record carries at least one fetched value.
func (r QuoteRecord) HasQuote() bool {
	return r.Price != nil || r.PreviousClose != nil
}
