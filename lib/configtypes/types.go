package configtypes

// Client configures the connection to the remote matrix service.
type Client struct {
	// Address of the matrix service in host:port form. A grpc:// prefix is allowed.
	Address string `mapstructure:"address" json:"address" yaml:"address" toml:"address"`
	// Timeout is a per-call deadline. Zero disables it.
	Timeout Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout"`
	// TLS for the channel. Plaintext is used when disabled.
	TLS TLSConfig `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`
	// CredentialsKey and CredentialsValue are attached to every call as metadata.
	CredentialsKey   string `mapstructure:"credentials_key" json:"credentials_key" yaml:"credentials_key" toml:"credentials_key"`
	CredentialsValue string `mapstructure:"credentials_value" json:"credentials_value" yaml:"credentials_value" toml:"credentials_value"`
	// Tracing enables OpenTelemetry instrumentation of calls.
	Tracing bool `mapstructure:"tracing" json:"tracing" yaml:"tracing" toml:"tracing"`
	// Metrics enables Prometheus call metrics on the default registerer.
	Metrics bool `mapstructure:"metrics" json:"metrics" yaml:"metrics" toml:"metrics"`
	// RateLimit caps calls per second made through one connection. Zero means unlimited.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	// RateBurst is the burst size used together with RateLimit.
	RateBurst int `mapstructure:"rate_burst" json:"rate_burst" yaml:"rate_burst" toml:"rate_burst"`
}

// Log configures logging.
type Log struct {
	// Level is one of none, trace, debug, info, warn, error, fatal.
	Level string `mapstructure:"level" json:"level" yaml:"level" toml:"level"`
	// File is an optional log file. Logs go to STDOUT when empty.
	File string `mapstructure:"file" json:"file" yaml:"file" toml:"file"`
}
