package yahoo

// quoteDocument is the envelope returned by GET /v7/finance/quote.
type quoteDocument struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *quoteError   `json:"error"`
	} `json:"quoteResponse"`
}

// quoteResult is one symbol's entry. Price fields are pointers so that a
// document omitting them yields absent values rather than zeroes.
type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
}

// quoteError is the error object the endpoint embeds in the envelope.
type quoteError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
