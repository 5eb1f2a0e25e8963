package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/cyfung/portfolio-helper-sub001/internal/model"
	"github.com/cyfung/portfolio-helper-sub001/internal/quotes"
)

const quotePath = "/v7/finance/quote"

// Fetch performs a single remote lookup for one symbol. Absent price
// fields in the response produce absent values; everything else that goes
// wrong produces a FetchError carrying the symbol and the cause.
func (c *Client) Fetch(ctx context.Context, symbol string) (model.Quote, error) {
	query := url.Values{}
	query.Set("symbols", symbol)

	var doc quoteDocument
	if err := c.get(ctx, quotePath, query, &doc); err != nil {
		return model.Quote{}, &quotes.FetchError{Symbol: symbol, Err: err}
	}

	if e := doc.QuoteResponse.Error; e != nil {
		return model.Quote{}, &quotes.FetchError{
			Symbol: symbol,
			Err:    fmt.Errorf("source error %s: %s", e.Code, e.Description),
		}
	}

	if len(doc.QuoteResponse.Result) == 0 {
		return model.Quote{}, &quotes.FetchError{
			Symbol: symbol,
			Err:    errors.New("no quote in response"),
		}
	}

	result := doc.QuoteResponse.Result[0]
	c.logger.Debug("fetched quote",
		"symbol", symbol,
		"has_price", result.RegularMarketPrice != nil,
		"has_previous_close", result.RegularMarketPreviousClose != nil,
	)

	return model.Quote{
		Price:         result.RegularMarketPrice,
		PreviousClose: result.RegularMarketPreviousClose,
	}, nil
}
