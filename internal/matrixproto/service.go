package matrixproto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified name of the remote matrix service.
const ServiceName = "matrix_service.MatrixService"

const (
	LoadMatrixFromFileMethod = "/" + ServiceName + "/LoadMatrixFromFile"
	CreateZeroMatrixMethod   = "/" + ServiceName + "/CreateZeroMatrix"
	GetMatrixSizeMethod      = "/" + ServiceName + "/GetMatrixSize"
	MultiplyMatricesMethod   = "/" + ServiceName + "/MultiplyMatrices"
	ListObjectsMethod        = "/" + ServiceName + "/ListObjects"
)

var grpcCodec = Codec{}

// MatrixServiceClient is the client API for the matrix service.
type MatrixServiceClient interface {
	LoadMatrixFromFile(ctx context.Context, in *LoadMatrixRequest, opts ...grpc.CallOption) (*MatrixInfoResponse, error)
	CreateZeroMatrix(ctx context.Context, in *CreateZeroMatrixRequest, opts ...grpc.CallOption) (*MatrixInfoResponse, error)
	GetMatrixSize(ctx context.Context, in *GetMatrixSizeRequest, opts ...grpc.CallOption) (*MatrixSizeResponse, error)
	MultiplyMatrices(ctx context.Context, in *MultiplyMatricesRequest, opts ...grpc.CallOption) (*MatrixInfoResponse, error)
	ListObjects(ctx context.Context, in *ListObjectsRequest, opts ...grpc.CallOption) (*ListObjectsResponse, error)
}

type matrixServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatrixServiceClient(cc grpc.ClientConnInterface) MatrixServiceClient {
	return &matrixServiceClient{cc}
}

func (c *matrixServiceClient) invoke(ctx context.Context, method string, in, out Message, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(grpcCodec)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *matrixServiceClient) LoadMatrixFromFile(ctx context.Context, in *LoadMatrixRequest, opts ...grpc.CallOption) (*MatrixInfoResponse, error) {
	out := new(MatrixInfoResponse)
	if err := c.invoke(ctx, LoadMatrixFromFileMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) CreateZeroMatrix(ctx context.Context, in *CreateZeroMatrixRequest, opts ...grpc.CallOption) (*MatrixInfoResponse, error) {
	out := new(MatrixInfoResponse)
	if err := c.invoke(ctx, CreateZeroMatrixMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) GetMatrixSize(ctx context.Context, in *GetMatrixSizeRequest, opts ...grpc.CallOption) (*MatrixSizeResponse, error) {
	out := new(MatrixSizeResponse)
	if err := c.invoke(ctx, GetMatrixSizeMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) MultiplyMatrices(ctx context.Context, in *MultiplyMatricesRequest, opts ...grpc.CallOption) (*MatrixInfoResponse, error) {
	out := new(MatrixInfoResponse)
	if err := c.invoke(ctx, MultiplyMatricesMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) ListObjects(ctx context.Context, in *ListObjectsRequest, opts ...grpc.CallOption) (*ListObjectsResponse, error) {
	out := new(ListObjectsResponse)
	if err := c.invoke(ctx, ListObjectsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// MatrixServiceServer is the server API for the matrix service. Servers must
// be created with grpc.ForceServerCodec(Codec{}).
type MatrixServiceServer interface {
	LoadMatrixFromFile(context.Context, *LoadMatrixRequest) (*MatrixInfoResponse, error)
	CreateZeroMatrix(context.Context, *CreateZeroMatrixRequest) (*MatrixInfoResponse, error)
	GetMatrixSize(context.Context, *GetMatrixSizeRequest) (*MatrixSizeResponse, error)
	MultiplyMatrices(context.Context, *MultiplyMatricesRequest) (*MatrixInfoResponse, error)
	ListObjects(context.Context, *ListObjectsRequest) (*ListObjectsResponse, error)
}

// UnimplementedMatrixServiceServer can be embedded to have forward compatible implementations.
type UnimplementedMatrixServiceServer struct{}

func (UnimplementedMatrixServiceServer) LoadMatrixFromFile(context.Context, *LoadMatrixRequest) (*MatrixInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LoadMatrixFromFile not implemented")
}
func (UnimplementedMatrixServiceServer) CreateZeroMatrix(context.Context, *CreateZeroMatrixRequest) (*MatrixInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateZeroMatrix not implemented")
}
func (UnimplementedMatrixServiceServer) GetMatrixSize(context.Context, *GetMatrixSizeRequest) (*MatrixSizeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMatrixSize not implemented")
}
func (UnimplementedMatrixServiceServer) MultiplyMatrices(context.Context, *MultiplyMatricesRequest) (*MatrixInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MultiplyMatrices not implemented")
}
func (UnimplementedMatrixServiceServer) ListObjects(context.Context, *ListObjectsRequest) (*ListObjectsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListObjects not implemented")
}

func RegisterMatrixServiceServer(s grpc.ServiceRegistrar, srv MatrixServiceServer) {
	s.RegisterService(&MatrixServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, PReq interface {
	*Req
	Message
}, Resp any](method string, call func(MatrixServiceServer, context.Context, PReq) (Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatrixServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatrixServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MatrixServiceDesc is the grpc.ServiceDesc for the matrix service.
var MatrixServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatrixServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "LoadMatrixFromFile",
			Handler:    unaryHandler(LoadMatrixFromFileMethod, MatrixServiceServer.LoadMatrixFromFile),
		},
		{
			MethodName: "CreateZeroMatrix",
			Handler:    unaryHandler(CreateZeroMatrixMethod, MatrixServiceServer.CreateZeroMatrix),
		},
		{
			MethodName: "GetMatrixSize",
			Handler:    unaryHandler(GetMatrixSizeMethod, MatrixServiceServer.GetMatrixSize),
		},
		{
			MethodName: "MultiplyMatrices",
			Handler:    unaryHandler(MultiplyMatricesMethod, MatrixServiceServer.MultiplyMatrices),
		},
		{
			MethodName: "ListObjects",
			Handler:    unaryHandler(ListObjectsMethod, MatrixServiceServer.ListObjects),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "matrix_service.proto",
}
