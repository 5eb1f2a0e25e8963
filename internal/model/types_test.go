package model

import (
	"testing"
	"time"
)

func TestNewPlaceholder(t *testing.T) {
	before := time.Now()
	r := NewPlaceholder("AAPL")

	if r.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want %q", r.Symbol, "AAPL")
	}
	if r.Price != nil {
		t.Errorf("Price = %v, want nil", *r.Price)
	}
	if r.PreviousClose != nil {
		t.Errorf("PreviousClose = %v, want nil", *r.PreviousClose)
	}
	if r.UpdatedAt.Before(before) {
		t.Errorf("UpdatedAt = %v, want >= %v", r.UpdatedAt, before)
	}
	if r.HasQuote() {
		t.Error("placeholder should not report a quote")
	}
}

func TestQuoteRecord_HasQuote(t *testing.T) {
	price := 150.0

	tests := []struct {
		name string
		rec  QuoteRecord
		want bool
	}{
		{"empty", QuoteRecord{Symbol: "X"}, false},
		{"price only", QuoteRecord{Symbol: "X", Price: &price}, true},
		{"previous close only", QuoteRecord{Symbol: "X", PreviousClose: &price}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.HasQuote(); got != tt.want {
				t.Errorf("HasQuote() = %v, want %v", got, tt.want)
			}
		})
	}
}
