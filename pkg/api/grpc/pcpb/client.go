package pcpb

import (
	"context"

	"google.golang.org/grpc"
)

// PointCloudServiceClient is the client API for PointCloudService.
type PointCloudServiceClient interface {
	CreateDataset(ctx context.Context, in *CreateDatasetRequest, opts ...grpc.CallOption) (*CreateDatasetResponse, error)
	DeleteDataset(ctx context.Context, in *DeleteDatasetRequest, opts ...grpc.CallOption) (*DeleteDatasetResponse, error)
	ListDatasets(ctx context.Context, in *ListDatasetsRequest, opts ...grpc.CallOption) (*ListDatasetsResponse, error)
	UploadPoints(ctx context.Context, in *UploadPointsRequest, opts ...grpc.CallOption) (*UploadPointsResponse, error)
	Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error)
	FitModel(ctx context.Context, in *FitModelRequest, opts ...grpc.CallOption) (*FitModelResponse, error)
	Cluster(ctx context.Context, in *ClusterRequest, opts ...grpc.CallOption) (*ClusterResponse, error)
	ConvexHull(ctx context.Context, in *ConvexHullRequest, opts ...grpc.CallOption) (*ConvexHullResponse, error)
	Triangulate(ctx context.Context, in *TriangulateRequest, opts ...grpc.CallOption) (*TriangulateResponse, error)
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
}

type pointCloudServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPointCloudServiceClient wraps a ClientConn, using the "json" codec
// registered in codec.go in place of the default protobuf wire codec.
func NewPointCloudServiceClient(cc grpc.ClientConnInterface) PointCloudServiceClient {
	return &pointCloudServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, c *pointCloudServiceClient, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/pointcloud.PointCloudService/"+method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pointCloudServiceClient) CreateDataset(ctx context.Context, in *CreateDatasetRequest, opts ...grpc.CallOption) (*CreateDatasetResponse, error) {
	return invoke[CreateDatasetRequest, CreateDatasetResponse](ctx, c, "CreateDataset", in, opts...)
}

func (c *pointCloudServiceClient) DeleteDataset(ctx context.Context, in *DeleteDatasetRequest, opts ...grpc.CallOption) (*DeleteDatasetResponse, error) {
	return invoke[DeleteDatasetRequest, DeleteDatasetResponse](ctx, c, "DeleteDataset", in, opts...)
}

func (c *pointCloudServiceClient) ListDatasets(ctx context.Context, in *ListDatasetsRequest, opts ...grpc.CallOption) (*ListDatasetsResponse, error) {
	return invoke[ListDatasetsRequest, ListDatasetsResponse](ctx, c, "ListDatasets", in, opts...)
}

func (c *pointCloudServiceClient) UploadPoints(ctx context.Context, in *UploadPointsRequest, opts ...grpc.CallOption) (*UploadPointsResponse, error) {
	return invoke[UploadPointsRequest, UploadPointsResponse](ctx, c, "UploadPoints", in, opts...)
}

func (c *pointCloudServiceClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	return invoke[QueryRequest, QueryResponse](ctx, c, "Query", in, opts...)
}

func (c *pointCloudServiceClient) FitModel(ctx context.Context, in *FitModelRequest, opts ...grpc.CallOption) (*FitModelResponse, error) {
	return invoke[FitModelRequest, FitModelResponse](ctx, c, "FitModel", in, opts...)
}

func (c *pointCloudServiceClient) Cluster(ctx context.Context, in *ClusterRequest, opts ...grpc.CallOption) (*ClusterResponse, error) {
	return invoke[ClusterRequest, ClusterResponse](ctx, c, "Cluster", in, opts...)
}

func (c *pointCloudServiceClient) ConvexHull(ctx context.Context, in *ConvexHullRequest, opts ...grpc.CallOption) (*ConvexHullResponse, error) {
	return invoke[ConvexHullRequest, ConvexHullResponse](ctx, c, "ConvexHull", in, opts...)
}

func (c *pointCloudServiceClient) Triangulate(ctx context.Context, in *TriangulateRequest, opts ...grpc.CallOption) (*TriangulateResponse, error) {
	return invoke[TriangulateRequest, TriangulateResponse](ctx, c, "Triangulate", in, opts...)
}

func (c *pointCloudServiceClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	return invoke[HealthCheckRequest, HealthCheckResponse](ctx, c, "HealthCheck", in, opts...)
}
