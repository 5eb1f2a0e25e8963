// Package model defines the shared value types passed between the quote
// fetcher, the polling cache service, and its consumers.
package model
