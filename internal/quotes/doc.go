// Package quotes implements the polling quote cache.
//
// The Service:
//   - Owns the set of tracked ticker symbols
//   - Runs one repeating background job per symbol that fetches via the
//     injected QuoteFetcher
//   - Keeps the last-known value per symbol in a concurrent cache that is
//     always readable, even before the first successful fetch
//   - Dispatches update callbacks in registration order after every
//     successful fetch
//
// Individual fetch failures are logged and retried on the next scheduled
// tick; they never surface to readers. A tick that is still running when
// the next one fires is skipped rather than queued.
package quotes
