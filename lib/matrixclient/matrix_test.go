package matrixclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMatrixUnbound(t *testing.T) {
	m := NewMatrix("a", 2, 3)
	require.Nil(t, m.Client())
	require.Equal(t, "a", m.Name())
	rows, cols := m.Size()
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)
	require.Equal(t, `Matrix(name="a", rows=2, cols=3)`, m.String())
}

func TestUnboundMultiply(t *testing.T) {
	a := NewMatrix("a", 2, 3)
	b := NewMatrix("b", 3, 2)

	r, err := a.Multiply(context.Background(), b, "r")
	require.Nil(t, r)
	require.ErrorIs(t, err, ErrUnboundHandle)
	var unboundErr *UnboundHandleError
	require.ErrorAs(t, err, &unboundErr)
	require.Equal(t, "a", unboundErr.Name)
	require.False(t, IsTransportError(err))
	require.False(t, IsRemoteOperationError(err))
}
