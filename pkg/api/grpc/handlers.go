package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/nyx-labs/pointcloud/pkg/api/grpc/pcpb"
	"github.com/nyx-labs/pointcloud/pkg/cluster"
	"github.com/nyx-labs/pointcloud/pkg/dataset"
	"github.com/nyx-labs/pointcloud/pkg/delaunay"
	"github.com/nyx-labs/pointcloud/pkg/hull"
	"github.com/nyx-labs/pointcloud/pkg/kdtree"
	"github.com/nyx-labs/pointcloud/pkg/models"
	"github.com/nyx-labs/pointcloud/pkg/ransac"
)

func (s *Server) CreateDataset(ctx context.Context, req *pcpb.CreateDatasetRequest) (*pcpb.CreateDatasetResponse, error) {
	quota := dataset.DefaultQuota()
	if req.MaxPoints > 0 {
		quota.MaxPoints = req.MaxPoints
	}
	if req.MaxDimensions > 0 {
		quota.MaxDimensions = req.MaxDimensions
	}

	ds, err := s.datasets.Create(req.Name, quota)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	s.metrics.UpdateDatasetsActive(len(s.datasets.List()))

	return &pcpb.CreateDatasetResponse{Dataset: toDatasetInfo(ds)}, nil
}

func (s *Server) DeleteDataset(ctx context.Context, req *pcpb.DeleteDatasetRequest) (*pcpb.DeleteDatasetResponse, error) {
	if err := s.datasets.Delete(req.Name); err != nil {
		return nil, fmt.Errorf("delete dataset: %w", err)
	}
	s.mu.Lock()
	delete(s.indexed, req.Name)
	s.mu.Unlock()
	s.metrics.UpdateDatasetsActive(len(s.datasets.List()))
	return &pcpb.DeleteDatasetResponse{}, nil
}

func (s *Server) ListDatasets(ctx context.Context, req *pcpb.ListDatasetsRequest) (*pcpb.ListDatasetsResponse, error) {
	list := s.datasets.List()
	out := make([]pcpb.DatasetInfo, len(list))
	for i, ds := range list {
		out[i] = toDatasetInfo(ds)
	}
	return &pcpb.ListDatasetsResponse{Datasets: out}, nil
}

func toDatasetInfo(ds *dataset.Dataset) pcpb.DatasetInfo {
	return pcpb.DatasetInfo{
		Name:          ds.Name,
		PointCount:    ds.PointCount(),
		MaxPoints:     ds.Quota.MaxPoints,
		MaxDimensions: ds.Quota.MaxDimensions,
		Active:        true,
	}
}

func (s *Server) UploadPoints(ctx context.Context, req *pcpb.UploadPointsRequest) (*pcpb.UploadPointsResponse, error) {
	ds, err := s.datasets.Get(req.Dataset)
	if err != nil {
		return nil, fmt.Errorf("upload points: %w", err)
	}
	if len(req.Points) == 0 {
		return nil, fmt.Errorf("upload points: empty point set")
	}
	dim := len(req.Points[0])
	if err := ds.CheckDimensionQuota(dim); err != nil {
		return nil, err
	}
	if err := ds.CheckPointQuota(int64(len(req.Points))); err != nil {
		return nil, err
	}

	points := req.Points
	if prev := s.getIndexed(req.Dataset); prev != nil {
		points = append(append([][]float64{}, prev.buffer.Points()...), req.Points...)
	}
	entry, err := s.setIndexed(req.Dataset, points)
	if err != nil {
		return nil, fmt.Errorf("upload points: %w", err)
	}
	ds.IncrementPointCount(int64(len(req.Points)))

	return &pcpb.UploadPointsResponse{
		PointCount: entry.buffer.Len(),
		Dimension:  entry.buffer.Dim(),
	}, nil
}

func (s *Server) Query(ctx context.Context, req *pcpb.QueryRequest) (*pcpb.QueryResponse, error) {
	entry := s.getIndexed(req.Dataset)
	if entry == nil {
		return nil, fmt.Errorf("query: dataset %q has no uploaded points", req.Dataset)
	}

	start := time.Now()
	var raw []kdtree.Neighbor
	switch req.Mode {
	case "knn":
		raw = entry.kd.KNN(req.Target, req.K)
	case "kfn":
		raw = entry.kd.KFN(req.Target, req.K)
	case "radius":
		raw = entry.kd.Radius(req.Target, req.Radius)
	default:
		return nil, fmt.Errorf("query: unknown mode %q", req.Mode)
	}
	s.metrics.RecordTreeQuery(req.Mode, time.Since(start))

	neighbors := make([]pcpb.Neighbor, len(raw))
	for i, n := range raw {
		neighbors[i] = pcpb.Neighbor{Index: n.Index, Distance: n.Distance}
	}
	return &pcpb.QueryResponse{Neighbors: neighbors}, nil
}

func (s *Server) FitModel(ctx context.Context, req *pcpb.FitModelRequest) (*pcpb.FitModelResponse, error) {
	entry := s.getIndexed(req.Dataset)
	if entry == nil {
		return nil, fmt.Errorf("fit model: dataset %q has no uploaded points", req.Dataset)
	}

	var model ransac.Model
	switch req.ModelType {
	case "plane":
		model = models.Plane{}
	case "line":
		model = models.Line{}
	case "circle3d":
		model = models.Circle3D{}
	case "sphere":
		model = models.Sphere{}
	default:
		return nil, fmt.Errorf("fit model: unknown model type %q", req.ModelType)
	}

	cfg := ransac.DefaultConfig()
	cfg.Threshold = req.Threshold
	if req.SuccessProbability > 0 {
		cfg.SuccessProbability = req.SuccessProbability
	}
	if req.MaxIterations > 0 {
		cfg.MaxIterations = req.MaxIterations
	}
	if req.Workers > 0 {
		cfg.Workers = req.Workers
	}

	var result ransac.Result
	stage := s.logger.WithDataset(req.Dataset).WithAlgorithm(req.ModelType)
	err := stage.LogStage("ransac fit", func() error {
		var runErr error
		result, runErr = ransac.Run(model, entry.buffer.Points(), cfg)
		return runErr
	})
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	s.metrics.RecordRansacRun(result.Iterations, len(result.Inliers), result.Skipped)

	return &pcpb.FitModelResponse{
		Coefficients:  result.Coefficients,
		InlierIndices: result.Inliers,
		Iterations:    result.Iterations,
		Skipped:       result.Skipped,
	}, nil
}

func (s *Server) Cluster(ctx context.Context, req *pcpb.ClusterRequest) (*pcpb.ClusterResponse, error) {
	entry := s.getIndexed(req.Dataset)
	if entry == nil {
		return nil, fmt.Errorf("cluster: dataset %q has no uploaded points", req.Dataset)
	}

	maxNbCluster := s.config.Cluster.MaxNbCluster

	var clusters [][]int
	switch req.Algorithm {
	case "euclidean":
		clusters = cluster.Euclidean(entry.kd, entry.buffer.Points(), req.Tolerance, req.MinSize, req.MaxSize, maxNbCluster)
	case "dbscan":
		clusters = cluster.DBSCAN(entry.kd, entry.buffer.Points(), req.Eps, req.MinPoints, maxNbCluster)
	default:
		return nil, fmt.Errorf("cluster: unknown algorithm %q", req.Algorithm)
	}
	s.metrics.RecordClusterRun(req.Algorithm, clusters)

	return &pcpb.ClusterResponse{Clusters: clusters}, nil
}

func (s *Server) ConvexHull(ctx context.Context, req *pcpb.ConvexHullRequest) (*pcpb.ConvexHullResponse, error) {
	entry := s.getIndexed(req.Dataset)
	if entry == nil {
		return nil, fmt.Errorf("convex hull: dataset %q has no uploaded points", req.Dataset)
	}

	switch entry.buffer.Dim() {
	case 2:
		pts2 := make([][2]float64, entry.buffer.Len())
		for i, p := range entry.buffer.Points() {
			pts2[i] = [2]float64{p[0], p[1]}
		}
		ring := hull.QuickHull2D(pts2)
		s.metrics.RecordHullRun("2d", len(ring), false)
		return &pcpb.ConvexHullResponse{VertexIndices: ring}, nil
	case 3:
		pts3 := make([][3]float64, entry.buffer.Len())
		for i, p := range entry.buffer.Points() {
			pts3[i] = [3]float64{p[0], p[1], p[2]}
		}
		res := hull.QuickHull3D(pts3)
		if res.Planar {
			s.metrics.RecordHullRun("3d", len(res.Ring), true)
			return &pcpb.ConvexHullResponse{VertexIndices: res.Ring, FellBackTo2D: true}, nil
		}
		vertices := faceVertexSet(res.Faces)
		s.metrics.RecordHullRun("3d", len(vertices), false)
		return &pcpb.ConvexHullResponse{VertexIndices: vertices}, nil
	default:
		return nil, fmt.Errorf("convex hull: unsupported dimension %d", entry.buffer.Dim())
	}
}

func faceVertexSet(faces []hull.Face) []int {
	seen := make(map[int]bool)
	var out []int
	for _, f := range faces {
		for _, idx := range [3]int{f.A, f.B, f.C} {
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
	}
	return out
}

func (s *Server) Triangulate(ctx context.Context, req *pcpb.TriangulateRequest) (*pcpb.TriangulateResponse, error) {
	entry := s.getIndexed(req.Dataset)
	if entry == nil {
		return nil, fmt.Errorf("triangulate: dataset %q has no uploaded points", req.Dataset)
	}
	if entry.buffer.Dim() != 2 {
		return nil, fmt.Errorf("triangulate: dataset %q is not 2D", req.Dataset)
	}

	pts2 := make([][2]float64, entry.buffer.Len())
	for i, p := range entry.buffer.Points() {
		pts2[i] = [2]float64{p[0], p[1]}
	}

	tri := delaunay.Build(pts2)
	triangles := make([]pcpb.Triangle, len(tri.Triangles))
	for i, t := range tri.Triangles {
		triangles[i] = pcpb.Triangle{A: t.A, B: t.B, C: t.C}
	}

	var shapes [][]int
	if req.Alpha > 0 {
		for _, shape := range delaunay.AlphaShape(tri, req.Alpha) {
			if len(shape.Contours) > 0 {
				shapes = append(shapes, shape.Contours[0])
			}
		}
	}
	s.metrics.RecordDelaunay(len(triangles), len(shapes))

	return &pcpb.TriangulateResponse{Triangles: triangles, Shapes: shapes}, nil
}

func (s *Server) HealthCheck(ctx context.Context, req *pcpb.HealthCheckRequest) (*pcpb.HealthCheckResponse, error) {
	return &pcpb.HealthCheckResponse{
		Status:        "ok",
		UptimeSeconds: s.Uptime().Seconds(),
	}, nil
}
