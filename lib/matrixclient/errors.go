package matrixclient

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrConnClosed is wrapped by the TransportError returned from calls made
	// through a closed Conn.
	ErrConnClosed = errors.New("connection closed")
	// ErrUnboundHandle matches UnboundHandleError with errors.Is.
	ErrUnboundHandle = errors.New("matrix handle is not bound to a client")
)

// Local argument errors. They are returned before any network activity and
// are neither transport nor remote failures.
var (
	ErrNilOperand          = errors.New("matrixclient: nil matrix operand")
	ErrInvalidPattern      = errors.New("matrixclient: malformed object name pattern")
	ErrDimensionOutOfRange = errors.New("matrixclient: matrix dimension out of int32 range")
)

// ConnectionError is returned by Open when a Conn cannot be created: the
// address is malformed or the options are invalid.
type ConnectionError struct {
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("matrixclient: cannot open %q: %v", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransportError means the call did not complete: the server was unreachable,
// the deadline expired or the channel failed. The Conn stays usable.
type TransportError struct {
	Op      string
	Code    codes.Code
	Message string
	err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("matrixclient: %s: transport error: code = %s desc = %s", e.Op, e.Code, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// RemoteOperationError means the server handled the call and rejected it.
// Message is the server's error text, unmodified.
type RemoteOperationError struct {
	Op      string
	Message string
	// Code is codes.OK when the rejection came as success=false in the
	// response body, otherwise the status code the server replied with.
	Code codes.Code
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("matrixclient: %s: server error: %s", e.Op, e.Message)
}

// UnboundHandleError is returned when a client-bound convenience method is
// called on a Matrix that has no client.
type UnboundHandleError struct {
	Name string
}

func (e *UnboundHandleError) Error() string {
	return fmt.Sprintf("matrixclient: matrix %q: %v", e.Name, ErrUnboundHandle)
}

func (e *UnboundHandleError) Is(target error) bool {
	return target == ErrUnboundHandle
}

// IsTransportError reports whether err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsRemoteOperationError reports whether err is or wraps a RemoteOperationError.
func IsRemoteOperationError(err error) bool {
	var e *RemoteOperationError
	return errors.As(err, &e)
}

// rejectionCodes are status codes a server uses to refuse a well-formed
// request. Anything else is treated as a channel failure.
var rejectionCodes = map[codes.Code]struct{}{
	codes.NotFound:           {},
	codes.AlreadyExists:      {},
	codes.InvalidArgument:    {},
	codes.FailedPrecondition: {},
	codes.OutOfRange:         {},
}

// classifyError turns an error from the gRPC layer into TransportError or
// RemoteOperationError. The raw gRPC error is never returned.
func classifyError(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			st = status.FromContextError(err)
		}
	}
	if _, rejected := rejectionCodes[st.Code()]; rejected {
		return &RemoteOperationError{Op: op, Message: st.Message(), Code: st.Code()}
	}
	return &TransportError{Op: op, Code: st.Code(), Message: st.Message()}
}
