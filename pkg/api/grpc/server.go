package grpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/nyx-labs/pointcloud/internal/telemetry"
	"github.com/nyx-labs/pointcloud/pkg/api/grpc/pcpb"
	"github.com/nyx-labs/pointcloud/pkg/config"
	"github.com/nyx-labs/pointcloud/pkg/dataset"
	"github.com/nyx-labs/pointcloud/pkg/kdtree"
	"github.com/nyx-labs/pointcloud/pkg/octree"
	"github.com/nyx-labs/pointcloud/pkg/pointcloud"
	"github.com/nyx-labs/pointcloud/pkg/quantize"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// indexedDataset pairs a dataset's point buffer with the spatial indices
// built over it. Indices are rebuilt wholesale on every UploadPoints call;
// the buffer underneath an index is never mutated, only replaced.
type indexedDataset struct {
	buffer *pointcloud.Buffer
	kd     *kdtree.Tree
	oct    *octree.Tree // non-nil only for 3D datasets
}

// Server implements pcpb.PointCloudServiceServer over in-memory datasets.
type Server struct {
	pcpb.UnimplementedPointCloudServiceServer

	config     *config.Config
	metrics    *telemetry.Metrics
	logger     *telemetry.Logger
	grpcServer *grpc.Server
	listener   net.Listener
	startTime  time.Time
	shutdownMu sync.Mutex
	isShutdown bool

	datasets *dataset.Manager

	mu      sync.RWMutex
	indexed map[string]*indexedDataset // dataset name -> built indices
}

// NewServer creates a new gRPC server.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Server{
		config:    cfg,
		metrics:   telemetry.NewMetrics(),
		logger:    telemetry.NewDefaultLogger(),
		datasets:  dataset.NewManager(),
		indexed:   make(map[string]*indexedDataset),
		startTime: time.Now(),
	}, nil
}

// getIndexed returns the built indices for a dataset, or nil if the
// dataset has no points uploaded yet.
func (s *Server) getIndexed(name string) *indexedDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexed[name]
}

// setIndexed rebuilds and stores a dataset's spatial indices.
func (s *Server) setIndexed(name string, points [][]float64) (*indexedDataset, error) {
	buffer, err := pointcloud.NewBuffer(points)
	if err != nil {
		return nil, err
	}

	dsLogger := s.logger.WithDataset(name)

	start := time.Now()
	kd, err := kdtree.Build(points)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTreeBuild("kdtree", time.Since(start))
	dsLogger.WithAlgorithm("kdtree").Infof("index built over %d points", len(points))

	entry := &indexedDataset{buffer: buffer, kd: kd}

	if buffer.Dim() == 3 {
		pts3 := make([][3]float64, len(points))
		for i, p := range points {
			pts3[i] = [3]float64{p[0], p[1], p[2]}
		}
		start = time.Now()
		oct, err := octree.Build(pts3, octree.Config{
			MaxPoints: s.config.Octree.MaxPointsPerLeaf,
			MaxDepth:  s.config.Octree.MaxDepth,
		})
		if err == nil {
			entry.oct = oct
			s.metrics.RecordTreeBuild("octree", time.Since(start))
			dsLogger.WithAlgorithm("octree").Infof("index built over %d points", len(points))
		}
	}

	s.mu.Lock()
	s.indexed[name] = entry
	s.mu.Unlock()

	s.recordQuantizedSnapshot(name, entry.buffer)

	return entry, nil
}

// recordQuantizedSnapshot scalar-quantizes entry's points and records the
// resulting snapshot size, giving operators a storage-footprint estimate
// for persisting or shipping a dataset without keeping float64 precision.
// Quantization failures (e.g. an empty buffer) are non-fatal to the upload.
func (s *Server) recordQuantizedSnapshot(name string, buffer *pointcloud.Buffer) {
	if buffer.Len() == 0 {
		return
	}
	q := quantize.NewScalarQuantizer(buffer.Dim())
	if err := q.Train(buffer.Points()); err != nil {
		return
	}
	size := 0
	for _, p := range buffer.Points() {
		code, err := q.Encode(p)
		if err != nil {
			return
		}
		size += len(code)
	}
	s.metrics.UpdateQuantizedSnapshotBytes(name, size)
}

// Start starts the gRPC server.
func (s *Server) Start() error {
	var opts []grpc.ServerOption

	if s.config.Server.EnableTLS {
		cert, err := tls.LoadX509KeyPair(s.config.Server.CertFile, s.config.Server.KeyFile)
		if err != nil {
			return fmt.Errorf("failed to load TLS certificates: %w", err)
		}
		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		creds := credentials.NewTLS(tlsConfig)
		opts = append(opts, grpc.Creds(creds))
		log.Println("TLS enabled")
	}

	kaParams := keepalive.ServerParameters{
		MaxConnectionIdle: 15 * time.Second,
		MaxConnectionAge:  30 * time.Second,
		Time:              5 * time.Second,
		Timeout:           1 * time.Second,
	}
	opts = append(opts, grpc.KeepaliveParams(kaParams))
	opts = append(opts, grpc.MaxConcurrentStreams(uint32(s.config.Server.MaxConnections)))

	s.grpcServer = grpc.NewServer(opts...)
	pcpb.RegisterPointCloudServiceServer(s.grpcServer, s)
	reflection.Register(s.grpcServer)

	addr := s.config.Server.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.logger.Infof("point-cloud gRPC server listening on %s", addr)

	go func() {
		if err := s.grpcServer.Serve(listener); err != nil {
			s.logger.Errorf("gRPC server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()

	if s.isShutdown {
		return nil
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.logger.Info("server stopped gracefully")
	case <-ctx.Done():
		s.logger.Warn("shutdown timeout exceeded, forcing stop")
		s.grpcServer.Stop()
	}

	s.isShutdown = true
	return nil
}

// Wait blocks until the server is stopped.
func (s *Server) Wait() {
	if s.listener != nil {
		<-make(chan struct{})
	}
}

// Uptime returns server uptime.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}
