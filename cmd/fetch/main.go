package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cyfung/portfolio-helper-sub001/internal/yahoo"
)

// One-shot quote fetch for manual testing. Prints one JSON object per
// symbol to stdout.
func main() {
	var symbolsCSV string
	var baseURL string
	var timeout int

	flag.StringVar(&symbolsCSV, "symbols", "AAPL", "comma-separated ticker symbols")
	flag.StringVar(&baseURL, "base-url", yahoo.DefaultBaseURL, "quote endpoint host")
	flag.IntVar(&timeout, "timeout", 10, "request timeout seconds")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	client := yahoo.NewClient(
		yahoo.WithBaseURL(baseURL),
		yahoo.WithTimeout(time.Duration(timeout)*time.Second),
		yahoo.WithLogger(logger),
	)
	defer client.Close()

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)

	exitCode := 0
	for _, symbol := range strings.Split(symbolsCSV, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}

		quote, err := client.Fetch(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch %s: %v\n", symbol, err)
			exitCode = 1
			continue
		}

		enc.Encode(map[string]any{
			"symbol":         symbol,
			"price":          quote.Price,
			"previous_close": quote.PreviousClose,
		})
	}

	os.Exit(exitCode)
}
