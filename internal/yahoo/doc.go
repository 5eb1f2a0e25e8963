// Package yahoo implements the QuoteFetcher contract against a
// Yahoo-Finance-shaped quote endpoint.
//
// Each Fetch issues one outbound request and parses the nested JSON
// document. Fields the source omits come back as absent values, not
// errors; network, non-2xx, and malformed-payload failures come back as
// a FetchError.
package yahoo
