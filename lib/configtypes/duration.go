package configtypes

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Duration is a time.Duration that is configured as a string like "5s".
type Duration time.Duration

func (d Duration) String() string {
	return d.ToDuration().String()
}

// ToDuration converts the Duration type to time.Duration.
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON for JSON encoding.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// MarshalText for TOML encoding.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// MarshalYAML for YAML encoding.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func StringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Duration(5)) {
			return data, nil
		}
		d, err := time.ParseDuration(data.(string))
		if err != nil {
			return nil, err
		}
		return Duration(d), nil
	}
}
