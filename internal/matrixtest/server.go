package matrixtest

import (
	"context"
	"errors"
	"log"
	"net"

	"github.com/nextproxy/nsproxy/internal/matrixproto"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

// Address is a syntactically valid address to open clients against. The
// dialer returned by Server.Dialer ignores it.
const Address = "127.0.0.1:50051"

// Server runs a matrix service on an in-memory listener.
type Server struct {
	*Service
	GRPC     *grpc.Server
	Listener *bufconn.Listener
}

// NewServer starts serving srv (or a fresh Service when srv is nil) on bufconn.
func NewServer(srv matrixproto.MatrixServiceServer) *Server {
	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer(grpc.ForceServerCodec(matrixproto.Codec{}))
	if srv == nil {
		srv = NewService(ServiceOptions{})
	}
	matrixproto.RegisterMatrixServiceServer(server, srv)

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Fatalf("GRPC server exited with error: %v", err)
		}
	}()

	s := &Server{
		GRPC:     server,
		Listener: listener,
	}
	if svc, ok := srv.(*Service); ok {
		s.Service = svc
	}
	return s
}

// Dialer connects to the in-memory listener regardless of the target address.
func (s *Server) Dialer() func(context.Context, string) (net.Conn, error) {
	return func(ctx context.Context, _ string) (net.Conn, error) {
		return s.Listener.DialContext(ctx)
	}
}

func (s *Server) Teardown() {
	s.GRPC.Stop()
}
