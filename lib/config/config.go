// Package config contains nsproxy Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nextproxy/nsproxy/lib/configtypes"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-envparse"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable nsproxy reads, e.g.
// NSPROXY_CLIENT_ADDRESS for client.address.
const EnvPrefix = "NSPROXY"

type Config struct {
	// Client configures the channel to the remote matrix service.
	Client configtypes.Client `mapstructure:"client" json:"client" yaml:"client" toml:"client"`
	// Log is a configuration for logging.
	Log configtypes.Log `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

type Meta struct {
	FileNotFound bool
	UnknownKeys  []string
	UnknownEnvs  []string
}

// defaults lists every known key. Keys must be known to viper for
// AutomaticEnv to pick them up during Unmarshal.
var defaults = map[string]any{
	"client.address":                  "localhost:50051",
	"client.timeout":                  "5s",
	"client.tls.enabled":              false,
	"client.tls.cert_file":            "",
	"client.tls.key_file":             "",
	"client.tls.server_ca_file":       "",
	"client.tls.insecure_skip_verify": false,
	"client.tls.server_name":          "",
	"client.credentials_key":          "",
	"client.credentials_value":        "",
	"client.tracing":                  false,
	"client.metrics":                  false,
	"client.rate_limit":               0.0,
	"client.rate_burst":               1,
	"log.level":                       "info",
	"log.file":                        "",
}

var bindPFlags = []string{"client.address", "client.timeout", "log.level", "log.file"}

// DefineFlags registers flags an embedding command may expose. GetConfig binds
// them when called with the same command.
func DefineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("client.address", "a", "localhost:50051", "matrix service address (host:port)")
	cmd.Flags().StringP("client.timeout", "", "5s", "per-call deadline, 0 disables it")
	cmd.Flags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error, fatal or none")
	cmd.Flags().StringP("log.file", "", "", "optional log file - if not specified logs go to STDOUT")
}

// GetConfig loads configuration from defaults, an optional config file
// (json, yaml or toml), NSPROXY_* environment variables and, if cmd is not
// nil, its flags. Later sources win: flags over env over file over defaults.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		configtypes.StringToDurationHookFunc(),
	)))

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, flag := range bindPFlags {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(flag, f)
			}
		}
	}

	meta := Meta{}

	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var configFileNotFoundError *os.PathError
			if errors.As(err, &configFileNotFoundError) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	conf := &Config{}
	err := v.Unmarshal(conf)
	if err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	meta.UnknownKeys = findUnknownKeys(v.AllKeys())
	meta.UnknownEnvs = checkEnvironmentVars(os.Environ())
	return *conf, meta, nil
}

func findUnknownKeys(keys []string) []string {
	var unknown []string
	for _, key := range keys {
		if _, ok := defaults[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func checkEnvironmentVars(environ []string) []string {
	known := make(map[string]struct{}, len(defaults))
	for key := range defaults {
		known[envName(key)] = struct{}{}
	}
	var unknownEnvs []string
	for _, envVar := range environ {
		kv, err := envparse.Parse(strings.NewReader(envVar))
		if err != nil {
			continue
		}
		for envKey := range kv {
			if !strings.HasPrefix(envKey, EnvPrefix+"_") {
				continue
			}
			if _, ok := known[envKey]; !ok {
				unknownEnvs = append(unknownEnvs, envKey)
			}
		}
	}
	sort.Strings(unknownEnvs)
	return unknownEnvs
}

// LoadDotEnv loads environment variables from path when the file exists.
// Variables already present in the environment are not overridden.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("error loading %s: %w", path, err)
	}
	return true, nil
}

// DefaultConfig is a helper to be used in tests.
func DefaultConfig() Config {
	conf, _, err := GetConfig(nil, "")
	if err != nil {
		panic("error during getting default config: " + err.Error())
	}
	return conf
}
