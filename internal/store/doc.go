// Package store persists the last-known quote per symbol in PostgreSQL.
//
// It keeps exactly one row per symbol (upsert on every update) so a
// restarted daemon can serve last-known values before its first fetch.
// It is not a time-series history.
package store
