package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nyx-labs/pointcloud/pkg/api/grpc/pcpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	version = "1.0.0"
)

var (
	serverAddr string
	dataset    string
	timeout    time.Duration
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	flag.StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	flag.StringVar(&dataset, "dataset", "default", "dataset to use")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	command := os.Args[1]

	switch command {
	case "create-dataset":
		handleCreateDataset(os.Args[2:])
	case "delete-dataset":
		handleDeleteDataset(os.Args[2:])
	case "list-datasets":
		handleListDatasets(os.Args[2:])
	case "upload":
		handleUpload(os.Args[2:])
	case "query":
		handleQuery(os.Args[2:])
	case "fit-model":
		handleFitModel(os.Args[2:])
	case "cluster":
		handleCluster(os.Args[2:])
	case "convex-hull":
		handleConvexHull(os.Args[2:])
	case "triangulate":
		handleTriangulate(os.Args[2:])
	case "health":
		handleHealth(os.Args[2:])
	case "version":
		fmt.Printf("pointcloud-cli version %s\n", version)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		showUsage()
		os.Exit(1)
	}
}

func handleCreateDataset(args []string) {
	fs := flag.NewFlagSet("create-dataset", flag.ExitOnError)
	var (
		maxPoints     = fs.Int64("max-points", 0, "max points allowed (0 = quota default)")
		maxDimensions = fs.Int("max-dimensions", 0, "max dimensions allowed (0 = quota default)")
	)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.Parse(args)

	name := firstArg(fs)
	if name == "" {
		fmt.Println("Error: dataset name is required")
		fs.Usage()
		os.Exit(1)
	}

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CreateDataset(ctx, &pcpb.CreateDatasetRequest{
		Name:          name,
		MaxPoints:     *maxPoints,
		MaxDimensions: *maxDimensions,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("created dataset %q (max points: %d, max dimensions: %d)\n",
		resp.Dataset.Name, resp.Dataset.MaxPoints, resp.Dataset.MaxDimensions)
}

func handleDeleteDataset(args []string) {
	fs := flag.NewFlagSet("delete-dataset", flag.ExitOnError)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.Parse(args)

	name := firstArg(fs)
	if name == "" {
		fmt.Println("Error: dataset name is required")
		fs.Usage()
		os.Exit(1)
	}

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.DeleteDataset(ctx, &pcpb.DeleteDatasetRequest{Name: name}); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("deleted dataset %q\n", name)
}

func handleListDatasets(args []string) {
	fs := flag.NewFlagSet("list-datasets", flag.ExitOnError)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.Parse(args)

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListDatasets(ctx, &pcpb.ListDatasetsRequest{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range resp.Datasets {
		fmt.Printf("%-20s points=%-10d max_points=%-10d max_dims=%d\n",
			ds.Name, ds.PointCount, ds.MaxPoints, ds.MaxDimensions)
	}
}

func handleUpload(args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	pointsStr := fs.String("points", "", "points as a JSON array of coordinate arrays (required)")
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.StringVar(&dataset, "dataset", dataset, "dataset")
	fs.Parse(args)

	if *pointsStr == "" {
		fmt.Println("Error: -points is required")
		fs.Usage()
		os.Exit(1)
	}

	var points [][]float64
	if err := json.Unmarshal([]byte(*pointsStr), &points); err != nil {
		fmt.Printf("Error parsing points: %v\n", err)
		os.Exit(1)
	}

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.UploadPoints(ctx, &pcpb.UploadPointsRequest{Dataset: dataset, Points: points})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("uploaded %d points (dimension %d) to dataset %q\n", resp.PointCount, resp.Dimension, dataset)
}

func handleQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	var (
		targetStr = fs.String("target", "", "query point as JSON array (required)")
		mode      = fs.String("mode", "knn", "query mode: knn, kfn, or radius")
		k         = fs.Int("k", 10, "number of neighbors for knn/kfn")
		radius    = fs.Float64("radius", 0, "search radius for radius mode")
	)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.StringVar(&dataset, "dataset", dataset, "dataset")
	fs.Parse(args)

	if *targetStr == "" {
		fmt.Println("Error: -target is required")
		fs.Usage()
		os.Exit(1)
	}

	var target []float64
	if err := json.Unmarshal([]byte(*targetStr), &target); err != nil {
		fmt.Printf("Error parsing target: %v\n", err)
		os.Exit(1)
	}

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Query(ctx, &pcpb.QueryRequest{
		Dataset: dataset,
		Target:  target,
		Mode:    *mode,
		K:       *k,
		Radius:  *radius,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("found %d neighbors\n", len(resp.Neighbors))
	for _, n := range resp.Neighbors {
		fmt.Printf("  index=%-8d distance=%.6f\n", n.Index, n.Distance)
	}
}

func handleFitModel(args []string) {
	fs := flag.NewFlagSet("fit-model", flag.ExitOnError)
	var (
		modelType = fs.String("model", "plane", "model type: plane, line, circle3d, sphere")
		threshold = fs.Float64("threshold", 0.01, "inlier distance threshold")
		workers   = fs.Int("workers", 0, "worker goroutines (0 = config default)")
	)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.StringVar(&dataset, "dataset", dataset, "dataset")
	fs.Parse(args)

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.FitModel(ctx, &pcpb.FitModelRequest{
		Dataset:   dataset,
		ModelType: *modelType,
		Threshold: *threshold,
		Workers:   *workers,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("coefficients: %v\n", resp.Coefficients)
	fmt.Printf("inliers: %d  iterations: %d  skipped: %d\n", len(resp.InlierIndices), resp.Iterations, resp.Skipped)
}

func handleCluster(args []string) {
	fs := flag.NewFlagSet("cluster", flag.ExitOnError)
	var (
		algorithm = fs.String("algorithm", "euclidean", "clustering algorithm: euclidean or dbscan")
		tolerance = fs.Float64("tolerance", 0.05, "euclidean clustering tolerance")
		eps       = fs.Float64("eps", 0.05, "dbscan neighborhood radius")
		minPoints = fs.Int("min-points", 5, "dbscan core-point threshold")
	)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.StringVar(&dataset, "dataset", dataset, "dataset")
	fs.Parse(args)

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Cluster(ctx, &pcpb.ClusterRequest{
		Dataset:   dataset,
		Algorithm: *algorithm,
		Tolerance: *tolerance,
		Eps:       *eps,
		MinPoints: *minPoints,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("found %d clusters\n", len(resp.Clusters))
	for i, c := range resp.Clusters {
		fmt.Printf("  cluster %d: %d points\n", i, len(c))
	}
}

func handleConvexHull(args []string) {
	fs := flag.NewFlagSet("convex-hull", flag.ExitOnError)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.StringVar(&dataset, "dataset", dataset, "dataset")
	fs.Parse(args)

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ConvexHull(ctx, &pcpb.ConvexHullRequest{Dataset: dataset})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if resp.FellBackTo2D {
		fmt.Println("dataset is near-planar; fell back to a 2D hull ring")
	}
	fmt.Printf("hull vertices: %v\n", resp.VertexIndices)
}

func handleTriangulate(args []string) {
	fs := flag.NewFlagSet("triangulate", flag.ExitOnError)
	alpha := fs.Float64("alpha", 0, "alpha-shape radius (0 disables alpha-shape extraction)")
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.StringVar(&dataset, "dataset", dataset, "dataset")
	fs.Parse(args)

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Triangulate(ctx, &pcpb.TriangulateRequest{Dataset: dataset, Alpha: *alpha})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d triangles\n", len(resp.Triangles))
	if len(resp.Shapes) > 0 {
		fmt.Printf("%d alpha-shape contours\n", len(resp.Shapes))
	}
}

func handleHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	fs.StringVar(&serverAddr, "server", serverAddr, "gRPC server address")
	fs.Parse(args)

	client, conn := connectToServer()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.HealthCheck(ctx, &pcpb.HealthCheckRequest{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Uptime: %.1f seconds\n", resp.UptimeSeconds)

	if resp.Status != "ok" {
		os.Exit(1)
	}
}

func connectToServer() (pcpb.PointCloudServiceClient, *grpc.ClientConn) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctx, serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		fmt.Printf("Failed to connect to server at %s: %v\n", serverAddr, err)
		os.Exit(1)
	}

	return pcpb.NewPointCloudServiceClient(conn), conn
}

// firstArg returns the first positional (non-flag) argument, which
// create-dataset and delete-dataset take as the dataset name.
func firstArg(fs *flag.FlagSet) string {
	if fs.NArg() == 0 {
		return ""
	}
	return fs.Arg(0)
}

func showUsage() {
	fmt.Println(`Point Cloud CLI - client for the point-cloud gRPC server

Usage:
  pointcloud-cli <command> [options]

Commands:
  create-dataset NAME   Create a dataset
  delete-dataset NAME   Delete a dataset
  list-datasets         List datasets
  upload                Upload points to a dataset
  query                 KNN / KFN / radius search
  fit-model             Fit a plane/line/circle3d/sphere via RANSAC
  cluster               Euclidean or DBSCAN clustering
  convex-hull           Compute the convex hull
  triangulate           Delaunay triangulation (and optional alpha-shape)
  health                Check server health
  version               Show version
  help                  Show this help message

Global Options:
  -server ADDRESS    gRPC server address (default: localhost:50051)
  -dataset NAME      Dataset to operate on (default: default)

Requests time out after 30s (health checks after 5s); no flag changes this.

Examples:

  # Create a dataset and upload points
  pointcloud-cli create-dataset scan1
  pointcloud-cli upload -dataset scan1 -points '[[0,0,0],[1,0,0],[0,1,0]]'

  # Nearest-neighbor query
  pointcloud-cli query -dataset scan1 -target '[0.1,0.1,0]' -mode knn -k 5

  # Fit a plane with RANSAC
  pointcloud-cli fit-model -dataset scan1 -model plane -threshold 0.02

  # Cluster with DBSCAN
  pointcloud-cli cluster -dataset scan1 -algorithm dbscan -eps 0.1 -min-points 4

  # Convex hull and Delaunay triangulation
  pointcloud-cli convex-hull -dataset scan1
  pointcloud-cli triangulate -dataset scan1 -alpha 0.5

  # Check server health
  pointcloud-cli health

For more information, visit: https://github.com/nyx-labs/pointcloud`)
}
