package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *WatcherConfig) Validate() error {
	if len(c.Watchlist.Symbols) == 0 {
		return errors.New("watchlist.symbols is required")
	}
	for _, sym := range c.Watchlist.Symbols {
		if strings.TrimSpace(sym) == "" {
			return errors.New("watchlist.symbols must not contain empty symbols")
		}
	}

	if c.Poll.IntervalSeconds < 1 {
		return errors.New("poll.interval_seconds must be >= 1")
	}
	if c.Poll.RefreshConcurrency < 1 {
		return errors.New("poll.refresh_concurrency must be >= 1")
	}

	if c.Source.TimeoutSeconds < 1 {
		return errors.New("source.timeout_seconds must be >= 1")
	}

	if c.Database.Enabled {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("log.format must be pretty or json, got %q", c.Log.Format)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
