package matrixclient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		remote bool
		code   codes.Code
	}{
		{"not found", status.Error(codes.NotFound, "Matrix not found"), true, codes.NotFound},
		{"already exists", status.Error(codes.AlreadyExists, "exists"), true, codes.AlreadyExists},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad"), true, codes.InvalidArgument},
		{"unavailable", status.Error(codes.Unavailable, "down"), false, codes.Unavailable},
		{"internal", status.Error(codes.Internal, "boom"), false, codes.Internal},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false, codes.DeadlineExceeded},
		{"canceled", context.Canceled, false, codes.Canceled},
		{"plain", errors.New("plain"), false, codes.Unknown},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyError("op", tc.err)
			if tc.remote {
				var remoteErr *RemoteOperationError
				require.ErrorAs(t, err, &remoteErr)
				require.Equal(t, tc.code, remoteErr.Code)
				require.Equal(t, "op", remoteErr.Op)
				return
			}
			var transportErr *TransportError
			require.ErrorAs(t, err, &transportErr)
			require.Equal(t, tc.code, transportErr.Code)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	remoteErr := &RemoteOperationError{Op: "load_from_file", Message: "File not found: /x"}
	require.Equal(t, "matrixclient: load_from_file: server error: File not found: /x", remoteErr.Error())

	transportErr := &TransportError{Op: "get_size", Code: codes.Unavailable, Message: "down"}
	require.Equal(t, "matrixclient: get_size: transport error: code = Unavailable desc = down", transportErr.Error())

	connErr := &ConnectionError{Address: "x", Err: errors.New("missing port")}
	require.ErrorContains(t, connErr, `cannot open "x"`)
	require.EqualError(t, errors.Unwrap(connErr), "missing port")
}
