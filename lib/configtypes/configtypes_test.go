package configtypes

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestStringToDurationHookFunc(t *testing.T) {
	hook := StringToDurationHookFunc().(func(reflect.Type, reflect.Type, any) (any, error))

	res, err := hook(reflect.TypeOf(""), reflect.TypeOf(Duration(0)), "250ms")
	require.NoError(t, err)
	require.Equal(t, Duration(250*time.Millisecond), res)

	res, err = hook(reflect.TypeOf(""), reflect.TypeOf(""), "250ms")
	require.NoError(t, err)
	require.Equal(t, "250ms", res)

	_, err = hook(reflect.TypeOf(""), reflect.TypeOf(Duration(0)), "soon")
	require.Error(t, err)
}

func TestDurationMarshal(t *testing.T) {
	d := Duration(3 * time.Second)
	b, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"3s"`, string(b))
	b, err = d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "3s", string(b))
	require.Equal(t, 3*time.Second, d.ToDuration())
}

func TestTLSConfigDisabled(t *testing.T) {
	cfg, err := TLSConfig{}.ToGoTLSConfig()
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestMakeTLSConfig(t *testing.T) {
	files := map[string][]byte{
		"bad_ca.pem": []byte("not a certificate"),
	}
	readFile := func(name string) ([]byte, error) {
		if b, ok := files[name]; ok {
			return b, nil
		}
		return nil, errors.New("file not found")
	}

	tests := []struct {
		name    string
		cfg     TLSConfig
		wantErr string
	}{
		{
			name: "server name only",
			cfg:  TLSConfig{Enabled: true, ServerName: "matrix.local", InsecureSkipVerify: true},
		},
		{
			name:    "cert without key",
			cfg:     TLSConfig{Enabled: true, CertFile: "cert.pem"},
			wantErr: "both cert_file and key_file must be set",
		},
		{
			name:    "missing cert file",
			cfg:     TLSConfig{Enabled: true, CertFile: "cert.pem", KeyFile: "key.pem"},
			wantErr: "read TLS certificate",
		},
		{
			name:    "invalid server CA",
			cfg:     TLSConfig{Enabled: true, ServerCAFile: "bad_ca.pem"},
			wantErr: "no valid certificates found",
		},
		{
			name:    "missing server CA",
			cfg:     TLSConfig{Enabled: true, ServerCAFile: "ca.pem"},
			wantErr: "read server CA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tlsConfig, err := makeTLSConfig(tt.cfg, zerolog.Nop(), readFile)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.cfg.ServerName, tlsConfig.ServerName)
			require.Equal(t, tt.cfg.InsecureSkipVerify, tlsConfig.InsecureSkipVerify)
		})
	}
}
