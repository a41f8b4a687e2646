// Package matrixtest provides an in-memory matrix service served over
// bufconn for exercising clients without a real backend.
package matrixtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/nextproxy/nsproxy/internal/matrixproto"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type matrix struct {
	rows int32
	cols int32
}

// ServiceOptions tune the behaviour of Service.
type ServiceOptions struct {
	// Files maps server-side paths to the dimensions of the matrix stored there.
	Files map[string][2]int32
	// StatusErrors makes failed operations also return a non-OK gRPC status, the
	// way the reference C++ server does. gRPC drops the response body in that
	// case, so clients only see the short status text ("Not found"), not the
	// body's error_message.
	StatusErrors bool
	// Block makes every call wait until its context is done.
	Block bool
}

// Service is an in-memory implementation of matrixproto.MatrixServiceServer.
type Service struct {
	matrixproto.UnimplementedMatrixServiceServer

	opts ServiceOptions

	mu       sync.Mutex
	matrices map[string]matrix
	hints    []bool
	requests atomic.Int64
}

// NewService creates an empty Service.
func NewService(opts ServiceOptions) *Service {
	return &Service{
		opts:     opts,
		matrices: map[string]matrix{},
	}
}

// Requests returns the number of calls the service has received.
func (s *Service) Requests() int64 {
	return s.requests.Load()
}

// TransposeHints returns use_transpose values of all multiply calls in order.
func (s *Service) TransposeHints() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.hints...)
}

func (s *Service) enter(ctx context.Context) error {
	s.requests.Add(1)
	if s.opts.Block {
		<-ctx.Done()
		return status.FromContextError(ctx.Err()).Err()
	}
	return nil
}

// infoFailure reports a failed operation. statusText is what the reference
// server puts into the status, message is the body's error_message.
func (s *Service) infoFailure(code codes.Code, statusText string, message string) (*matrixproto.MatrixInfoResponse, error) {
	if s.opts.StatusErrors {
		return nil, status.Error(code, statusText)
	}
	return &matrixproto.MatrixInfoResponse{ErrorMessage: message}, nil
}

// addMatrix must be called with mu held.
func (s *Service) addMatrix(name string, rows, cols int32) bool {
	if _, ok := s.matrices[name]; ok {
		return false
	}
	s.matrices[name] = matrix{rows: rows, cols: cols}
	return true
}

func (s *Service) LoadMatrixFromFile(ctx context.Context, req *matrixproto.LoadMatrixRequest) (*matrixproto.MatrixInfoResponse, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	dims, ok := s.opts.Files[req.FilePath]
	if !ok {
		return s.infoFailure(codes.NotFound, "Not found", "File not found: "+req.FilePath)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.addMatrix(req.MatrixName, dims[0], dims[1]) {
		return s.infoFailure(codes.AlreadyExists, "Matrix exists", "Failed to create matrix (may already exist)")
	}
	return &matrixproto.MatrixInfoResponse{
		Success:    true,
		MatrixName: req.MatrixName,
		Rows:       dims[0],
		Cols:       dims[1],
	}, nil
}

func (s *Service) CreateZeroMatrix(ctx context.Context, req *matrixproto.CreateZeroMatrixRequest) (*matrixproto.MatrixInfoResponse, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	if req.Rows < 0 || req.Cols < 0 {
		return s.infoFailure(codes.InvalidArgument, "Invalid dimensions", "Matrix dimensions must be non-negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.addMatrix(req.MatrixName, req.Rows, req.Cols) {
		return s.infoFailure(codes.AlreadyExists, "Matrix exists", "Failed to create matrix (may already exist)")
	}
	return &matrixproto.MatrixInfoResponse{
		Success:    true,
		MatrixName: req.MatrixName,
		Rows:       req.Rows,
		Cols:       req.Cols,
	}, nil
}

func (s *Service) GetMatrixSize(ctx context.Context, req *matrixproto.GetMatrixSizeRequest) (*matrixproto.MatrixSizeResponse, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	m, ok := s.matrices[req.MatrixName]
	s.mu.Unlock()
	if !ok {
		if s.opts.StatusErrors {
			return nil, status.Error(codes.NotFound, "Not found")
		}
		return &matrixproto.MatrixSizeResponse{ErrorMessage: "Matrix not found"}, nil
	}
	return &matrixproto.MatrixSizeResponse{Success: true, Rows: m.rows, Cols: m.cols}, nil
}

func (s *Service) MultiplyMatrices(ctx context.Context, req *matrixproto.MultiplyMatricesRequest) (*matrixproto.MatrixInfoResponse, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hints = append(s.hints, req.UseTranspose)
	a, okA := s.matrices[req.MatrixAName]
	b, okB := s.matrices[req.MatrixBName]
	if !okA || !okB {
		return s.infoFailure(codes.NotFound, "Not found", "Input matrix not found")
	}
	if a.cols != b.rows {
		return s.infoFailure(codes.InvalidArgument, "Dimensions mismatch", fmt.Sprintf("Matrix dimensions mismatch: %dx%d * %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	if !s.addMatrix(req.ResultName, a.rows, b.cols) {
		return s.infoFailure(codes.AlreadyExists, "Result exists", "Failed to create result matrix")
	}
	return &matrixproto.MatrixInfoResponse{
		Success:    true,
		MatrixName: req.ResultName,
		Rows:       a.rows,
		Cols:       b.cols,
	}, nil
}

func (s *Service) ListObjects(ctx context.Context, _ *matrixproto.ListObjectsRequest) (*matrixproto.ListObjectsResponse, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	names := make([]string, 0, len(s.matrices))
	for name := range s.matrices {
		names = append(names, name)
	}
	s.mu.Unlock()
	sort.Strings(names)
	resp := &matrixproto.ListObjectsResponse{}
	for _, name := range names {
		resp.Objects = append(resp.Objects, &matrixproto.ObjectInfo{Name: name, Type: "Matrix"})
	}
	return resp, nil
}
