package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "episodegrid.v1.EpisodeGridService"

// Method names, also usable as suffixes of the full method path
const (
	MethodResolveShows             = "ResolveShows"
	MethodGetEpisodeReport         = "GetEpisodeReport"
	MethodGetEpisodeReportForQuery = "GetEpisodeReportForQuery"
)

// EpisodeGridServiceServer is the server API. Requests and responses are
// google.protobuf.Struct messages whose fields are documented per method.
type EpisodeGridServiceServer interface {
	// ResolveShows takes {"query": string} and returns {"shows": [Show]}.
	ResolveShows(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// GetEpisodeReport takes {"show_id": number} and returns a Report.
	GetEpisodeReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// GetEpisodeReportForQuery takes {"query": string} and returns a Report with its "show".
	GetEpisodeReportForQuery(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterEpisodeGridServiceServer registers srv on s
func RegisterEpisodeGridServiceServer(s grpc.ServiceRegistrar, srv EpisodeGridServiceServer) {
	s.RegisterService(&episodeGridServiceDesc, srv)
}

var episodeGridServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EpisodeGridServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodResolveShows,
			Handler: unaryHandler(MethodResolveShows, func(s EpisodeGridServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.ResolveShows(ctx, in)
			}),
		},
		{
			MethodName: MethodGetEpisodeReport,
			Handler: unaryHandler(MethodGetEpisodeReport, func(s EpisodeGridServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GetEpisodeReport(ctx, in)
			}),
		},
		{
			MethodName: MethodGetEpisodeReportForQuery,
			Handler: unaryHandler(MethodGetEpisodeReportForQuery, func(s EpisodeGridServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GetEpisodeReportForQuery(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "episodegrid/v1/episodegrid.proto",
}

type unaryMethod func(EpisodeGridServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a typed method to grpc.MethodHandler, running the interceptor chain when present
func unaryHandler(name string, call unaryMethod) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EpisodeGridServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EpisodeGridServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EpisodeGridServiceClient is the client API for EpisodeGridService
type EpisodeGridServiceClient interface {
	ResolveShows(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEpisodeReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEpisodeReportForQuery(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type episodeGridServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEpisodeGridServiceClient creates a client over an established connection
func NewEpisodeGridServiceClient(cc grpc.ClientConnInterface) EpisodeGridServiceClient {
	return &episodeGridServiceClient{cc: cc}
}

func (c *episodeGridServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *episodeGridServiceClient) ResolveShows(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodResolveShows, in, opts)
}

func (c *episodeGridServiceClient) GetEpisodeReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetEpisodeReport, in, opts)
}

func (c *episodeGridServiceClient) GetEpisodeReportForQuery(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetEpisodeReportForQuery, in, opts)
}
