package pcpb

// DatasetInfo describes a registered dataset's quota and current usage.
type DatasetInfo struct {
	Name          string `json:"name"`
	PointCount    int64  `json:"point_count"`
	MaxPoints     int64  `json:"max_points"`
	MaxDimensions int    `json:"max_dimensions"`
	Active        bool   `json:"active"`
}

// CreateDatasetRequest creates a dataset with an optional quota override.
type CreateDatasetRequest struct {
	Name          string `json:"name"`
	MaxPoints     int64  `json:"max_points"`
	MaxDimensions int    `json:"max_dimensions"`
}

type CreateDatasetResponse struct {
	Dataset DatasetInfo `json:"dataset"`
}

type DeleteDatasetRequest struct {
	Name string `json:"name"`
}

type DeleteDatasetResponse struct{}

type ListDatasetsRequest struct{}

type ListDatasetsResponse struct {
	Datasets []DatasetInfo `json:"datasets"`
}

// UploadPointsRequest appends points to a dataset and (re)builds its
// spatial indices. Points share Dimension coordinates each.
type UploadPointsRequest struct {
	Dataset string      `json:"dataset"`
	Points  [][]float64 `json:"points"`
}

type UploadPointsResponse struct {
	PointCount int `json:"point_count"`
	Dimension  int `json:"dimension"`
}

// QueryRequest drives a KD-tree nearest/farthest/radius search.
type QueryRequest struct {
	Dataset string    `json:"dataset"`
	Target  []float64 `json:"target"`
	Mode    string    `json:"mode"` // "knn", "kfn", "radius"
	K       int       `json:"k,omitempty"`
	Radius  float64   `json:"radius,omitempty"`
}

type Neighbor struct {
	Index    int     `json:"index"`
	Distance float64 `json:"distance"`
}

type QueryResponse struct {
	Neighbors []Neighbor `json:"neighbors"`
}

// FitModelRequest drives a RANSAC model fit. ModelType
// is one of "plane", "line", "circle3d", "sphere".
type FitModelRequest struct {
	Dataset            string  `json:"dataset"`
	ModelType          string  `json:"model_type"`
	Threshold          float64 `json:"threshold"`
	SuccessProbability float64 `json:"success_probability,omitempty"`
	MaxIterations      int     `json:"max_iterations,omitempty"`
	Workers            int     `json:"workers,omitempty"`
}

type FitModelResponse struct {
	Coefficients  []float64 `json:"coefficients"`
	InlierIndices []int     `json:"inlier_indices"`
	Iterations    int       `json:"iterations"`
	Skipped       int       `json:"skipped"`
}

// ClusterRequest drives Euclidean or DBSCAN clustering.
// Algorithm is "euclidean" or "dbscan".
type ClusterRequest struct {
	Dataset   string  `json:"dataset"`
	Algorithm string  `json:"algorithm"`
	Tolerance float64 `json:"tolerance,omitempty"`
	MinSize   int     `json:"min_size,omitempty"`
	MaxSize   int     `json:"max_size,omitempty"`
	Eps       float64 `json:"eps,omitempty"`
	MinPoints int     `json:"min_points,omitempty"`
}

type ClusterResponse struct {
	Clusters [][]int `json:"clusters"`
}

// ConvexHullRequest requests the convex hull of a dataset, dimension
// inferred from the dataset.
type ConvexHullRequest struct {
	Dataset string `json:"dataset"`
}

type ConvexHullResponse struct {
	VertexIndices []int `json:"vertex_indices"`
	FellBackTo2D  bool  `json:"fell_back_to_2d"`
}

// TriangulateRequest requests a Delaunay triangulation and alpha-shape
// extraction over a 2D dataset.
type TriangulateRequest struct {
	Dataset string  `json:"dataset"`
	Alpha   float64 `json:"alpha"`
}

type Triangle struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

type TriangulateResponse struct {
	Triangles []Triangle `json:"triangles"`
	Shapes    [][]int    `json:"shapes"`
}

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
