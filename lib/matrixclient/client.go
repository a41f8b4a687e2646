package matrixclient

import (
	"context"
	"fmt"
	"math"

	"github.com/nextproxy/nsproxy/internal/matrixproto"

	"github.com/gobwas/glob"
)

const (
	opLoadFromFile = "load_from_file"
	opCreateZero   = "create_zero"
	opGetSize      = "get_size"
	opMultiply     = "multiply"
	opListObjects  = "list_objects"
)

// Client exposes matrix service operations over a Conn. Each call is a single
// blocking request/response exchange.
type Client struct {
	conn *Conn
}

// NewClient creates a Client bound to conn. Closing conn is the caller's job.
func NewClient(conn *Conn) *Client {
	return &Client{conn: conn}
}

// Conn returns the connection the client calls through.
func (c *Client) Conn() *Conn {
	return c.conn
}

// ObjectInfo describes an object registered on the server.
type ObjectInfo struct {
	Name string
	Type string
}

// MultiplyOption configures a multiply call.
type MultiplyOption func(*multiplyOptions)

type multiplyOptions struct {
	useTranspose bool
}

// WithTransposeHint forwards a performance hint to the server. It does not
// change how the result is interpreted. The default is true.
func WithTransposeHint(useTranspose bool) MultiplyOption {
	return func(o *multiplyOptions) {
		o.useTranspose = useTranspose
	}
}

func (c *Client) matrixFromInfo(op string, resp *matrixproto.MatrixInfoResponse) (*Matrix, error) {
	if !resp.Success {
		return nil, &RemoteOperationError{Op: op, Message: resp.ErrorMessage}
	}
	return &Matrix{
		name:   resp.MatrixName,
		rows:   int(resp.Rows),
		cols:   int(resp.Cols),
		client: c,
	}, nil
}

// LoadFromFile asks the server to load a matrix stored at path on the
// server's own filesystem and register it as name.
func (c *Client) LoadFromFile(ctx context.Context, name string, path string) (*Matrix, error) {
	req := &matrixproto.LoadMatrixRequest{MatrixName: name, FilePath: path}
	var m *Matrix
	err := c.conn.invoke(ctx, opLoadFromFile, name, func(ctx context.Context, svc matrixproto.MatrixServiceClient) error {
		resp, err := svc.LoadMatrixFromFile(ctx, req)
		if err != nil {
			return err
		}
		m, err = c.matrixFromInfo(opLoadFromFile, resp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateZero asks the server to create a rows×cols zero matrix named name.
// The server decides which dimensions are acceptable; locally they are only
// checked to fit the int32 wire type, failing with ErrDimensionOutOfRange.
func (c *Client) CreateZero(ctx context.Context, name string, rows, cols int) (*Matrix, error) {
	if !fitsInt32(rows) || !fitsInt32(cols) {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, rows, cols)
	}
	req := &matrixproto.CreateZeroMatrixRequest{MatrixName: name, Rows: int32(rows), Cols: int32(cols)}
	var m *Matrix
	err := c.conn.invoke(ctx, opCreateZero, name, func(ctx context.Context, svc matrixproto.MatrixServiceClient) error {
		resp, err := svc.CreateZeroMatrix(ctx, req)
		if err != nil {
			return err
		}
		m, err = c.matrixFromInfo(opCreateZero, resp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetSize queries the current dimensions of name. An unknown name yields a
// RemoteOperationError.
func (c *Client) GetSize(ctx context.Context, name string) (rows int, cols int, err error) {
	req := &matrixproto.GetMatrixSizeRequest{MatrixName: name}
	err = c.conn.invoke(ctx, opGetSize, name, func(ctx context.Context, svc matrixproto.MatrixServiceClient) error {
		resp, err := svc.GetMatrixSize(ctx, req)
		if err != nil {
			return err
		}
		if !resp.Success {
			return &RemoteOperationError{Op: opGetSize, Message: resp.ErrorMessage}
		}
		rows, cols = int(resp.Rows), int(resp.Cols)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// Multiply asks the server to compute a×b and store it as resultName. The
// operands are referenced by name and may have been produced by any client
// of the same server.
func (c *Client) Multiply(ctx context.Context, a, b, resultName string, opts ...MultiplyOption) (*Matrix, error) {
	o := multiplyOptions{useTranspose: true}
	for _, opt := range opts {
		opt(&o)
	}
	req := &matrixproto.MultiplyMatricesRequest{
		MatrixAName:  a,
		MatrixBName:  b,
		ResultName:   resultName,
		UseTranspose: o.useTranspose,
	}
	var m *Matrix
	err := c.conn.invoke(ctx, opMultiply, resultName, func(ctx context.Context, svc matrixproto.MatrixServiceClient) error {
		resp, err := svc.MultiplyMatrices(ctx, req)
		if err != nil {
			return err
		}
		m, err = c.matrixFromInfo(opMultiply, resp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// MultiplyMatrices is Multiply taking handles instead of names. A nil operand
// fails with ErrNilOperand.
func (c *Client) MultiplyMatrices(ctx context.Context, a, b *Matrix, resultName string, opts ...MultiplyOption) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, ErrNilOperand
	}
	return c.Multiply(ctx, a.name, b.name, resultName, opts...)
}

// ListObjects returns objects registered on the server. A non-empty pattern
// is a glob matched against object names, e.g. "result_*". A pattern that does
// not compile fails with ErrInvalidPattern.
func (c *Client) ListObjects(ctx context.Context, pattern string) ([]ObjectInfo, error) {
	var g glob.Glob
	if pattern != "" {
		var err error
		g, err = glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}
	}
	var objects []ObjectInfo
	err := c.conn.invoke(ctx, opListObjects, pattern, func(ctx context.Context, svc matrixproto.MatrixServiceClient) error {
		resp, err := svc.ListObjects(ctx, &matrixproto.ListObjectsRequest{})
		if err != nil {
			return err
		}
		objects = make([]ObjectInfo, 0, len(resp.Objects))
		for _, obj := range resp.Objects {
			if g != nil && !g.Match(obj.Name) {
				continue
			}
			objects = append(objects, ObjectInfo{Name: obj.Name, Type: obj.Type})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}
