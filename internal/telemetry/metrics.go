package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instrumentation surface for the point-cloud
// library's three scheduling sites plus the hull/Delaunay/cluster
// algorithms built on top of them.
type Metrics struct {
	TreeBuildTotal    *prometheus.CounterVec
	TreeBuildDuration *prometheus.HistogramVec
	TreeQueryTotal    *prometheus.CounterVec
	TreeQueryDuration *prometheus.HistogramVec

	RansacRuns       prometheus.Counter
	RansacIterations prometheus.Histogram
	RansacInliers    prometheus.Histogram
	RansacSkipped    prometheus.Histogram

	ClusterRuns    *prometheus.CounterVec
	ClustersFound  *prometheus.HistogramVec
	ClusterLargest prometheus.Histogram

	HullRuns         *prometheus.CounterVec
	HullVertices     prometheus.Histogram
	HullFallbackTo2D prometheus.Counter

	DelaunayTriangles prometheus.Histogram
	AlphaShapeCount   prometheus.Histogram

	DatasetsActive   prometheus.Gauge
	DatasetQuotaUsed *prometheus.GaugeVec

	QuantizedSnapshotBytes *prometheus.GaugeVec
}

// NewMetrics creates and registers every metric against the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		TreeBuildTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointcloud_tree_build_total",
				Help: "Total number of spatial index builds, by index kind (kdtree, octree)",
			},
			[]string{"kind"},
		),
		TreeBuildDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointcloud_tree_build_duration_seconds",
				Help:    "Spatial index build duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
			[]string{"kind"},
		),
		TreeQueryTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointcloud_tree_query_total",
				Help: "Total number of spatial queries, by kind (knn, kfn, radius)",
			},
			[]string{"kind"},
		),
		TreeQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointcloud_tree_query_duration_seconds",
				Help:    "Spatial query duration in seconds",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"kind"},
		),

		RansacRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pointcloud_ransac_runs_total",
				Help: "Total number of RANSAC model-fitting runs",
			},
		),
		RansacIterations: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_ransac_iterations",
				Help:    "Iterations consumed per RANSAC run",
				Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 2000},
			},
		),
		RansacInliers: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_ransac_inliers",
				Help:    "Inlier count of the best model found per RANSAC run",
				Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
		),
		RansacSkipped: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_ransac_skipped_samples",
				Help:    "Degenerate samples skipped per RANSAC run",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
			},
		),

		ClusterRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointcloud_cluster_runs_total",
				Help: "Total number of clustering runs, by algorithm (euclidean, dbscan)",
			},
			[]string{"algorithm"},
		),
		ClustersFound: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointcloud_clusters_found",
				Help:    "Number of clusters produced per run, by algorithm",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"algorithm"},
		),
		ClusterLargest: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_cluster_largest_size",
				Help:    "Size of the largest cluster produced per run",
				Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
		),

		HullRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointcloud_hull_runs_total",
				Help: "Total number of convex hull computations, by dimension (2d, 3d)",
			},
			[]string{"dimension"},
		),
		HullVertices: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_hull_vertices",
				Help:    "Number of vertices on the computed hull",
				Buckets: []float64{3, 5, 10, 25, 50, 100, 500},
			},
		),
		HullFallbackTo2D: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pointcloud_hull_fallback_to_2d_total",
				Help: "Total number of 3D hull computations that fell back to the near-planar 2D path",
			},
		),

		DelaunayTriangles: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_delaunay_triangles",
				Help:    "Number of triangles in a completed Delaunay triangulation",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
			},
		),
		AlphaShapeCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointcloud_alpha_shape_count",
				Help:    "Number of connected shapes recovered per alpha-shape extraction",
				Buckets: []float64{0, 1, 2, 5, 10, 25},
			},
		),

		DatasetsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pointcloud_datasets_active",
				Help: "Current number of registered datasets",
			},
		),
		DatasetQuotaUsed: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pointcloud_dataset_quota_used_ratio",
				Help: "Dataset quota usage ratio (0-1), by dataset name and resource",
			},
			[]string{"dataset", "resource"},
		),

		QuantizedSnapshotBytes: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pointcloud_quantized_snapshot_bytes",
				Help: "Size in bytes of a dataset's scalar-quantized point snapshot, by dataset",
			},
			[]string{"dataset"},
		),
	}
}

// RecordTreeBuild records a completed spatial index build.
func (m *Metrics) RecordTreeBuild(kind string, duration time.Duration) {
	m.TreeBuildTotal.WithLabelValues(kind).Inc()
	m.TreeBuildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordTreeQuery records a completed spatial query.
func (m *Metrics) RecordTreeQuery(kind string, duration time.Duration) {
	m.TreeQueryTotal.WithLabelValues(kind).Inc()
	m.TreeQueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordRansacRun records one completed RANSAC run's outcome.
func (m *Metrics) RecordRansacRun(iterations, inliers, skipped int) {
	m.RansacRuns.Inc()
	m.RansacIterations.Observe(float64(iterations))
	m.RansacInliers.Observe(float64(inliers))
	m.RansacSkipped.Observe(float64(skipped))
}

// RecordClusterRun records a clustering run's outcome.
func (m *Metrics) RecordClusterRun(algorithm string, clusters [][]int) {
	m.ClusterRuns.WithLabelValues(algorithm).Inc()
	m.ClustersFound.WithLabelValues(algorithm).Observe(float64(len(clusters)))
	largest := 0
	for _, c := range clusters {
		if len(c) > largest {
			largest = len(c)
		}
	}
	m.ClusterLargest.Observe(float64(largest))
}

// RecordHullRun records a convex hull computation.
func (m *Metrics) RecordHullRun(dimension string, vertices int, fellBackTo2D bool) {
	m.HullRuns.WithLabelValues(dimension).Inc()
	m.HullVertices.Observe(float64(vertices))
	if fellBackTo2D {
		m.HullFallbackTo2D.Inc()
	}
}

// RecordDelaunay records a completed triangulation and its alpha-shape count.
func (m *Metrics) RecordDelaunay(triangleCount, shapeCount int) {
	m.DelaunayTriangles.Observe(float64(triangleCount))
	m.AlphaShapeCount.Observe(float64(shapeCount))
}

// UpdateDatasetsActive sets the current active-dataset gauge.
func (m *Metrics) UpdateDatasetsActive(count int) {
	m.DatasetsActive.Set(float64(count))
}

// UpdateDatasetQuota sets a dataset's quota usage ratio for one resource.
func (m *Metrics) UpdateDatasetQuota(dataset, resource string, ratio float64) {
	m.DatasetQuotaUsed.WithLabelValues(dataset, resource).Set(ratio)
}

// UpdateQuantizedSnapshotBytes records the size of a dataset's
// scalar-quantized point snapshot.
func (m *Metrics) UpdateQuantizedSnapshotBytes(dataset string, bytes int) {
	m.QuantizedSnapshotBytes.WithLabelValues(dataset).Set(float64(bytes))
}
