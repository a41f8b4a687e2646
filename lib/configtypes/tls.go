package configtypes

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TLSConfig is a client side TLS configuration for the matrix service channel.
type TLSConfig struct {
	// Enabled turns on using TLS.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	// CertFile is a path to a client certificate in PEM format (mutual TLS).
	CertFile string `mapstructure:"cert_file" json:"cert_file" yaml:"cert_file" toml:"cert_file"`
	// KeyFile is a path to a client key in PEM format (mutual TLS).
	KeyFile string `mapstructure:"key_file" json:"key_file" yaml:"key_file" toml:"key_file"`
	// ServerCAFile is a path to a root CA bundle used to verify the server certificate.
	ServerCAFile string `mapstructure:"server_ca_file" json:"server_ca_file" yaml:"server_ca_file" toml:"server_ca_file"`
	// InsecureSkipVerify turns off server certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" json:"insecure_skip_verify" yaml:"insecure_skip_verify" toml:"insecure_skip_verify"`
	// ServerName is used to verify the hostname on the returned certificates.
	ServerName string `mapstructure:"server_name" json:"server_name" yaml:"server_name" toml:"server_name"`
}

// ReadFileFunc is like os.ReadFile but helps in testing.
type ReadFileFunc func(name string) ([]byte, error)

// ToGoTLSConfig returns nil when TLS is disabled.
func (c TLSConfig) ToGoTLSConfig() (*tls.Config, error) {
	if !c.Enabled {
		return nil, nil
	}
	logger := log.With().Str("entity", "matrix_client_tls").Logger()
	tlsConfig, err := makeTLSConfig(c, logger, os.ReadFile)
	if err != nil {
		return nil, fmt.Errorf("error make TLS config: %w", err)
	}
	return tlsConfig, nil
}

func makeTLSConfig(cfg TLSConfig, logger zerolog.Logger, readFile ReadFileFunc) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		ServerName:         cfg.ServerName,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}
	switch {
	case cfg.CertFile != "" && cfg.KeyFile != "":
		certPEM, err := readFile(cfg.CertFile)
		if err != nil {
			return nil, fmt.Errorf("read TLS certificate: %w", err)
		}
		keyPEM, err := readFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read TLS key: %w", err)
		}
		cert, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return nil, fmt.Errorf("error create x509 key pair: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
		logger.Debug().Str("cert_file", cfg.CertFile).Msg("loaded client certificate")
	case cfg.CertFile != "" || cfg.KeyFile != "":
		return nil, errors.New("both cert_file and key_file must be set")
	}
	if cfg.ServerCAFile != "" {
		caPEM, err := readFile(cfg.ServerCAFile)
		if err != nil {
			return nil, fmt.Errorf("read server CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, errors.New("no valid certificates found in server CA")
		}
		tlsConfig.RootCAs = pool
		logger.Debug().Str("server_ca_file", cfg.ServerCAFile).Msg("loaded server CA")
	}
	logger.Debug().Str("server_name", cfg.ServerName).Bool("insecure_skip_verify", cfg.InsecureSkipVerify).Msg("TLS config created")
	return tlsConfig, nil
}
