package config

import (
	"errors"
	"fmt"

	"github.com/nextproxy/nsproxy/internal/address"
	"github.com/nextproxy/nsproxy/lib/logging"
)

// Validate checks the loaded configuration for mistakes that would only
// surface later at call time.
func (c Config) Validate() error {
	if _, _, err := address.Split(c.Client.Address); err != nil {
		return fmt.Errorf("invalid client.address %q: %w", c.Client.Address, err)
	}
	if c.Client.Timeout < 0 {
		return errors.New("client.timeout must not be negative")
	}
	if c.Client.RateLimit < 0 {
		return errors.New("client.rate_limit must not be negative")
	}
	if c.Client.RateLimit > 0 && c.Client.RateBurst < 1 {
		return errors.New("client.rate_burst must be at least 1 when client.rate_limit is set")
	}
	if (c.Client.CredentialsKey == "") != (c.Client.CredentialsValue == "") {
		return errors.New("client.credentials_key and client.credentials_value must be set together")
	}
	if c.Log.Level != "" {
		if _, ok := logging.ParseLevel(c.Log.Level); !ok {
			return fmt.Errorf("unknown log.level %q", c.Log.Level)
		}
	}
	return nil
}
