package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cyfung/portfolio-helper-sub001/internal/quotes"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL))
}

func TestClient_Fetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != quotePath {
			t.Errorf("path = %s, want %s", r.URL.Path, quotePath)
		}
		if got := r.URL.Query().Get("symbols"); got != "AAPL" {
			t.Errorf("symbols = %q, want %q", got, "AAPL")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quoteResponse": {
				"result": [
					{
						"symbol": "AAPL",
						"regularMarketPrice": 150.25,
						"regularMarketPreviousClose": 148.50
					}
				],
				"error": null
			}
		}`))
	})

	quote, err := client.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if quote.Price == nil || *quote.Price != 150.25 {
		t.Errorf("Price = %v, want 150.25", quote.Price)
	}
	if quote.PreviousClose == nil || *quote.PreviousClose != 148.50 {
		t.Errorf("PreviousClose = %v, want 148.50", quote.PreviousClose)
	}
}

func TestClient_Fetch_MissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [{"symbol": "HALTED"}], "error": null}}`))
	})

	quote, err := client.Fetch(context.Background(), "HALTED")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if quote.Price != nil {
		t.Errorf("Price = %v, want absent", *quote.Price)
	}
	if quote.PreviousClose != nil {
		t.Errorf("PreviousClose = %v, want absent", *quote.PreviousClose)
	}
}

func TestClient_Fetch_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [], "error": null}}`))
	})

	_, err := client.Fetch(context.Background(), "NOSUCH")
	var fe *quotes.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch error = %v, want FetchError", err)
	}
	if fe.Symbol != "NOSUCH" {
		t.Errorf("FetchError.Symbol = %q, want %q", fe.Symbol, "NOSUCH")
	}
}

func TestClient_Fetch_SourceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"quoteResponse": {
				"result": [],
				"error": {"code": "Bad Request", "description": "invalid symbol"}
			}
		}`))
	})

	_, err := client.Fetch(context.Background(), "???")
	var fe *quotes.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch error = %v, want FetchError", err)
	}
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := client.Fetch(context.Background(), "AAPL")
	var fe *quotes.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch error = %v, want FetchError", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchError cause = %v, want APIError", fe.Err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
}

func TestClient_Fetch_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Fetch(context.Background(), "AAPL")
	var fe *quotes.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch error = %v, want FetchError", err)
	}
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, "AAPL")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch error = %v, want context.Canceled in the chain", err)
	}
}

func TestClient_SendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"quoteResponse": {"result": [{"symbol": "AAPL"}], "error": null}}`))
	})

	if _, err := client.Fetch(context.Background(), "AAPL"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotUA != "portfolio-helper/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestClient_Close_Idempotent(t *testing.T) {
	client := NewClient()
	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
