package config

import "time"

// WatcherConfig is the root configuration for a watcher daemon instance.
type WatcherConfig struct {
	Watchlist WatchlistConfig `yaml:"watchlist"`
	Poll      PollConfig      `yaml:"poll"`
	Source    SourceConfig    `yaml:"source"`
	Database  DatabaseConfig  `yaml:"database"`
	Health    HealthConfig    `yaml:"health"`
	Log       LogConfig       `yaml:"log"`
}

// WatchlistConfig lists the symbols to track.
type WatchlistConfig struct {
	Symbols []string `yaml:"symbols"`
}

// PollConfig holds background refresh settings. Durations are integer
// seconds.
type PollConfig struct {
	IntervalSeconds    int `yaml:"interval_seconds"`
	RefreshConcurrency int `yaml:"refresh_concurrency"`
}

// Interval returns the polling interval as a duration.
func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// SourceConfig holds quote endpoint settings.
type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// Timeout returns the per-fetch timeout as a duration.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DatabaseConfig holds the optional last-known-quote store.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// HealthConfig holds the health/debug HTTP endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // pretty, json
}
