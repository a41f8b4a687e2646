package matrixclient

import (
	"context"
	"fmt"
)

// Matrix is a handle to a matrix stored on the server: its name and the
// dimensions reported when the handle was produced. It holds no data and is
// not refreshed if the server-side matrix changes later.
//
// Handles returned by Client methods remember that client so Multiply can be
// called on the handle directly. The handle does not own the client and stays
// a valid value after the client's Conn is closed.
type Matrix struct {
	name   string
	rows   int
	cols   int
	client *Client
}

// NewMatrix creates a handle that is not bound to any client, for a matrix
// known to exist on the server by other means.
func NewMatrix(name string, rows, cols int) *Matrix {
	return &Matrix{name: name, rows: rows, cols: cols}
}

func (m *Matrix) Name() string {
	return m.name
}

func (m *Matrix) Rows() int {
	return m.rows
}

func (m *Matrix) Cols() int {
	return m.cols
}

// Size returns the cached dimensions without contacting the server.
func (m *Matrix) Size() (rows int, cols int) {
	return m.rows, m.cols
}

// Client returns the client the handle is bound to, or nil.
func (m *Matrix) Client() *Client {
	return m.client
}

// Multiply computes m×other on the server through the bound client and stores
// the product as resultName. It fails with *UnboundHandleError, before any
// network activity, when m has no client.
func (m *Matrix) Multiply(ctx context.Context, other *Matrix, resultName string, opts ...MultiplyOption) (*Matrix, error) {
	if m.client == nil {
		return nil, &UnboundHandleError{Name: m.name}
	}
	return m.client.MultiplyMatrices(ctx, m, other, resultName, opts...)
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(name=%q, rows=%d, cols=%d)", m.name, m.rows, m.cols)
}
