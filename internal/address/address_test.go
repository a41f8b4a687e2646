package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		address string
		host    string
		port    int
		wantErr string
	}{
		{address: "localhost:50051", host: "localhost", port: 50051},
		{address: "grpc://127.0.0.1:1", host: "127.0.0.1", port: 1},
		{address: "[::1]:65535", host: "::1", port: 65535},
		{address: ":50051", wantErr: "missing host"},
		{address: "localhost:0", wantErr: "invalid port"},
		{address: "localhost:65536", wantErr: "invalid port"},
		{address: "localhost:port", wantErr: "invalid port"},
		{address: "localhost", wantErr: "missing port"},
	}
	for _, tc := range testCases {
		t.Run(tc.address, func(t *testing.T) {
			host, port, err := Split(tc.address)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.host, host)
			require.Equal(t, tc.port, port)
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("grpc://::1:50051")
	require.Error(t, err)
	require.Empty(t, got)

	got, err = Normalize("grpc://[::1]:50051")
	require.NoError(t, err)
	require.Equal(t, "[::1]:50051", got)
}
