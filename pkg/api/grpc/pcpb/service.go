package pcpb

import (
	"context"

	"google.golang.org/grpc"
)

// PointCloudServiceServer is the server API for PointCloudService, the
// hand-maintained equivalent of a protoc-gen-go-grpc generated interface.
type PointCloudServiceServer interface {
	CreateDataset(context.Context, *CreateDatasetRequest) (*CreateDatasetResponse, error)
	DeleteDataset(context.Context, *DeleteDatasetRequest) (*DeleteDatasetResponse, error)
	ListDatasets(context.Context, *ListDatasetsRequest) (*ListDatasetsResponse, error)
	UploadPoints(context.Context, *UploadPointsRequest) (*UploadPointsResponse, error)
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	FitModel(context.Context, *FitModelRequest) (*FitModelResponse, error)
	Cluster(context.Context, *ClusterRequest) (*ClusterResponse, error)
	ConvexHull(context.Context, *ConvexHullRequest) (*ConvexHullResponse, error)
	Triangulate(context.Context, *TriangulateRequest) (*TriangulateResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

// UnimplementedPointCloudServiceServer embeds into Server so that adding a
// method to the interface above does not break existing implementations.
type UnimplementedPointCloudServiceServer struct{}

func (UnimplementedPointCloudServiceServer) CreateDataset(context.Context, *CreateDatasetRequest) (*CreateDatasetResponse, error) {
	return nil, errUnimplemented("CreateDataset")
}
func (UnimplementedPointCloudServiceServer) DeleteDataset(context.Context, *DeleteDatasetRequest) (*DeleteDatasetResponse, error) {
	return nil, errUnimplemented("DeleteDataset")
}
func (UnimplementedPointCloudServiceServer) ListDatasets(context.Context, *ListDatasetsRequest) (*ListDatasetsResponse, error) {
	return nil, errUnimplemented("ListDatasets")
}
func (UnimplementedPointCloudServiceServer) UploadPoints(context.Context, *UploadPointsRequest) (*UploadPointsResponse, error) {
	return nil, errUnimplemented("UploadPoints")
}
func (UnimplementedPointCloudServiceServer) Query(context.Context, *QueryRequest) (*QueryResponse, error) {
	return nil, errUnimplemented("Query")
}
func (UnimplementedPointCloudServiceServer) FitModel(context.Context, *FitModelRequest) (*FitModelResponse, error) {
	return nil, errUnimplemented("FitModel")
}
func (UnimplementedPointCloudServiceServer) Cluster(context.Context, *ClusterRequest) (*ClusterResponse, error) {
	return nil, errUnimplemented("Cluster")
}
func (UnimplementedPointCloudServiceServer) ConvexHull(context.Context, *ConvexHullRequest) (*ConvexHullResponse, error) {
	return nil, errUnimplemented("ConvexHull")
}
func (UnimplementedPointCloudServiceServer) Triangulate(context.Context, *TriangulateRequest) (*TriangulateResponse, error) {
	return nil, errUnimplemented("Triangulate")
}
func (UnimplementedPointCloudServiceServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, errUnimplemented("HealthCheck")
}

func errUnimplemented(method string) error {
	return &unimplementedError{method: method}
}

type unimplementedError struct{ method string }

func (e *unimplementedError) Error() string {
	return "pcpb: method " + e.method + " not implemented"
}

// RegisterPointCloudServiceServer wires srv's methods into s's service
// registry, mirroring the registration function protoc-gen-go-grpc emits.
func RegisterPointCloudServiceServer(s grpc.ServiceRegistrar, srv PointCloudServiceServer) {
	s.RegisterService(&PointCloudService_ServiceDesc, srv)
}

// PointCloudService_ServiceDesc is the grpc.ServiceDesc for
// PointCloudService. Every method is unary; the point-cloud service has no
// streaming RPCs.
var PointCloudService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pointcloud.PointCloudService",
	HandlerType: (*PointCloudServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateDataset", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *CreateDatasetRequest) (interface{}, error) {
			return s.CreateDataset(ctx, req)
		})},
		{MethodName: "DeleteDataset", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *DeleteDatasetRequest) (interface{}, error) {
			return s.DeleteDataset(ctx, req)
		})},
		{MethodName: "ListDatasets", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *ListDatasetsRequest) (interface{}, error) {
			return s.ListDatasets(ctx, req)
		})},
		{MethodName: "UploadPoints", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *UploadPointsRequest) (interface{}, error) {
			return s.UploadPoints(ctx, req)
		})},
		{MethodName: "Query", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *QueryRequest) (interface{}, error) {
			return s.Query(ctx, req)
		})},
		{MethodName: "FitModel", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *FitModelRequest) (interface{}, error) {
			return s.FitModel(ctx, req)
		})},
		{MethodName: "Cluster", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *ClusterRequest) (interface{}, error) {
			return s.Cluster(ctx, req)
		})},
		{MethodName: "ConvexHull", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *ConvexHullRequest) (interface{}, error) {
			return s.ConvexHull(ctx, req)
		})},
		{MethodName: "Triangulate", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *TriangulateRequest) (interface{}, error) {
			return s.Triangulate(ctx, req)
		})},
		{MethodName: "HealthCheck", Handler: handlerFor(func(s PointCloudServiceServer, ctx context.Context, req *HealthCheckRequest) (interface{}, error) {
			return s.HealthCheck(ctx, req)
		})},
	},
	Metadata: "pointcloud.proto",
}

// handlerFor adapts a typed unary call into the untyped grpc.methodHandler
// shape, decoding the request with whatever codec the transport negotiated
// (see codec.go) and running it through the interceptor chain.
func handlerFor[Req any](call func(srv PointCloudServiceServer, ctx context.Context, req *Req) (interface{}, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PointCloudServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: PointCloudService_ServiceDesc.ServiceName,
		}
		handler := func(ctx context.Context, reqIface interface{}) (interface{}, error) {
			return call(srv.(PointCloudServiceServer), ctx, reqIface.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
