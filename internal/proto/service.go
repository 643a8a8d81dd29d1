package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "postguard.v1.PostGuardService"

const (
	MethodRegister     = "/" + ServiceName + "/Register"
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodLogout       = "/" + ServiceName + "/Logout"
	MethodRefresh      = "/" + ServiceName + "/Refresh"
	MethodSubmit       = "/" + ServiceName + "/Submit"
	MethodProfile      = "/" + ServiceName + "/Profile"
	MethodDistribution = "/" + ServiceName + "/Distribution"
	MethodExport       = "/" + ServiceName + "/Export"
	MethodPing         = "/" + ServiceName + "/Ping"
)

// PostGuardServiceServer is the server API for the PostGuard service.
type PostGuardServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error)
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	Distribution(context.Context, *DistributionRequest) (*DistributionResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedPostGuardServiceServer can be embedded for forward compatibility.
type UnimplementedPostGuardServiceServer struct{}

func (UnimplementedPostGuardServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedPostGuardServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedPostGuardServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedPostGuardServiceServer) Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedPostGuardServiceServer) Submit(context.Context, *SubmitRequest) (*SubmitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Submit not implemented")
}
func (UnimplementedPostGuardServiceServer) Profile(context.Context, *ProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}
func (UnimplementedPostGuardServiceServer) Distribution(context.Context, *DistributionRequest) (*DistributionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Distribution not implemented")
}
func (UnimplementedPostGuardServiceServer) Export(context.Context, *ExportRequest) (*ExportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Export not implemented")
}
func (UnimplementedPostGuardServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unaryHandler adapts a typed server method to the grpc method handler signature.
func unaryHandler[Req, Resp any](call func(PostGuardServiceServer, context.Context, *Req) (*Resp, error), fullMethod string) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &structpb.Struct{}
		if err := dec(in); err != nil {
			return nil, err
		}
		req := new(Req)
		if err := Decode(in, req); err != nil {
			return nil, status.Error(codes.InvalidArgument, "malformed request")
		}

		handler := func(ctx context.Context, r any) (any, error) {
			resp, err := call(srv.(PostGuardServiceServer), ctx, r.(*Req))
			if err != nil {
				return nil, err
			}
			return Encode(resp)
		}

		if interceptor == nil {
			return handler(ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, req, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostGuardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(PostGuardServiceServer.Register, MethodRegister)},
		{MethodName: "Login", Handler: unaryHandler(PostGuardServiceServer.Login, MethodLogin)},
		{MethodName: "Logout", Handler: unaryHandler(PostGuardServiceServer.Logout, MethodLogout)},
		{MethodName: "Refresh", Handler: unaryHandler(PostGuardServiceServer.Refresh, MethodRefresh)},
		{MethodName: "Submit", Handler: unaryHandler(PostGuardServiceServer.Submit, MethodSubmit)},
		{MethodName: "Profile", Handler: unaryHandler(PostGuardServiceServer.Profile, MethodProfile)},
		{MethodName: "Distribution", Handler: unaryHandler(PostGuardServiceServer.Distribution, MethodDistribution)},
		{MethodName: "Export", Handler: unaryHandler(PostGuardServiceServer.Export, MethodExport)},
		{MethodName: "Ping", Handler: unaryHandler(PostGuardServiceServer.Ping, MethodPing)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "postguard/v1/service.proto",
}

func RegisterPostGuardServiceServer(s grpc.ServiceRegistrar, srv PostGuardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// PostGuardServiceClient is the client API for the PostGuard service.
type PostGuardServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error)
	Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error)
	Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	Distribution(ctx context.Context, in *DistributionRequest, opts ...grpc.CallOption) (*DistributionResponse, error)
	Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type postGuardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPostGuardServiceClient(cc grpc.ClientConnInterface) PostGuardServiceClient {
	return &postGuardServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req *Req, opts ...grpc.CallOption) (*Resp, error) {
	in, err := Encode(req)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	resp := new(Resp)
	if err := Decode(out, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *postGuardServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterRequest, RegisterResponse](ctx, c.cc, MethodRegister, in, opts...)
}

func (c *postGuardServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginRequest, LoginResponse](ctx, c.cc, MethodLogin, in, opts...)
}

func (c *postGuardServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutRequest, LogoutResponse](ctx, c.cc, MethodLogout, in, opts...)
}

func (c *postGuardServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error) {
	return invoke[RefreshRequest, RefreshResponse](ctx, c.cc, MethodRefresh, in, opts...)
}

func (c *postGuardServiceClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error) {
	return invoke[SubmitRequest, SubmitResponse](ctx, c.cc, MethodSubmit, in, opts...)
}

func (c *postGuardServiceClient) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileRequest, ProfileResponse](ctx, c.cc, MethodProfile, in, opts...)
}

func (c *postGuardServiceClient) Distribution(ctx context.Context, in *DistributionRequest, opts ...grpc.CallOption) (*DistributionResponse, error) {
	return invoke[DistributionRequest, DistributionResponse](ctx, c.cc, MethodDistribution, in, opts...)
}

func (c *postGuardServiceClient) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportRequest, ExportResponse](ctx, c.cc, MethodExport, in, opts...)
}

func (c *postGuardServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, MethodPing, in, opts...)
}
