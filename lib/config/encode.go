package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SupportedFormats lists formats accepted by Encode.
var SupportedFormats = []string{"json", "toml", "yaml", "yml"}

// Encode renders the configuration in the given format, which is usually a
// config file extension.
func Encode(conf Config, format string) ([]byte, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		return json.MarshalIndent(conf, "", "  ")
	case "toml":
		return toml.Marshal(conf)
	case "yaml", "yml":
		return yaml.Marshal(conf)
	default:
		return nil, fmt.Errorf("format must be one of: %s", strings.Join(SupportedFormats, ", "))
	}
}
