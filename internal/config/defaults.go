package config

// Default values for optional configuration fields.
const (
	DefaultBaseURL            = "https://query1.finance.yahoo.com"
	DefaultUserAgent          = "portfolio-helper/1.0"
	DefaultIntervalSeconds    = 60
	DefaultTimeoutSeconds     = 10
	DefaultRefreshConcurrency = 8
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultHealthPort         = 8080
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "pretty"
)

func (c *WatcherConfig) applyDefaults() {
	// Poll defaults
	if c.Poll.IntervalSeconds == 0 {
		c.Poll.IntervalSeconds = DefaultIntervalSeconds
	}
	if c.Poll.RefreshConcurrency == 0 {
		c.Poll.RefreshConcurrency = DefaultRefreshConcurrency
	}

	// Source defaults
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = DefaultBaseURL
	}
	if c.Source.TimeoutSeconds == 0 {
		c.Source.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = DefaultUserAgent
	}

	// Database defaults
	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = DefaultDBPort
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = DefaultDBSSLMode
	}
	if c.Database.Postgres.MaxConns == 0 {
		c.Database.Postgres.MaxConns = DefaultMaxConns
	}
	if c.Database.Postgres.MinConns == 0 {
		c.Database.Postgres.MinConns = DefaultMinConns
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
