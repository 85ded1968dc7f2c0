package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all server and algorithm configuration.
type Config struct {
	Server  ServerConfig
	REST    RESTConfig
	KDTree  KDTreeConfig
	Octree  OctreeConfig
	RANSAC  RANSACConfig
	Cluster ClusterConfig
	Hull    HullConfig
	Dataset DatasetConfig
}

// ServerConfig holds gRPC/REST server configuration.
type ServerConfig struct {
	Host            string        // Server host (default: "0.0.0.0")
	Port            int           // Server port (default: 50051)
	MaxConnections  int           // Max concurrent connections
	RequestTimeout  time.Duration // Request timeout
	ShutdownTimeout time.Duration // Graceful shutdown timeout
	EnableTLS       bool          // Enable TLS
	CertFile        string        // TLS certificate file
	KeyFile         string        // TLS key file
}

// RESTConfig configures the optional HTTP gateway in front of the gRPC
// service: the REST layer is a thin JSON transcoder, not a separate
// service.
type RESTConfig struct {
	Enabled bool
	Host    string
	Port    int

	CORSEnabled bool
	CORSOrigins []string

	AuthEnabled bool
	JWTSecret   string
	PublicPaths []string
	AdminPaths  []string

	RateLimitEnabled bool
	RateLimitPerSec  float64
	RateLimitBurst   int
	RateLimitPerIP   bool
	RateLimitPerUser bool
	RateLimitGlobal  bool
}

// KDTreeConfig configures KD-tree construction.
type KDTreeConfig struct {
	ParallelBuildThreshold int // Point count above which build forks goroutines
}

// OctreeConfig configures octree construction.
type OctreeConfig struct {
	MaxPointsPerLeaf int // Bucket capacity before a leaf splits
	MaxDepth         int // Depth cap overriding the bucket capacity
}

// RANSACConfig configures the RANSAC driver.
type RANSACConfig struct {
	SuccessProbability float64 // p, default 0.99
	Threshold          float64 // tau: inlier distance threshold
	MaxIterations      int     // K_max
	Workers            int     // W
}

// ClusterConfig configures Euclidean/DBSCAN clustering.
type ClusterConfig struct {
	Tolerance      float64 // Euclidean clustering distance threshold
	MinClusterSize int     // Minimum cluster size kept
	MaxClusterSize int     // Maximum cluster size kept (0 disables the bound)
	MaxNbCluster   int     // Cluster-set truncation
	DBSCANEps      float64 // DBSCAN neighborhood radius
	DBSCANMinPts   int     // DBSCAN core-point threshold
}

// HullConfig configures convex hull / alpha-shape defaults.
type HullConfig struct {
	AlphaShapeDefault float64 // Default alpha for Delaunay alpha-shape extraction
}

// DatasetConfig configures the default dataset quota applied on creation.
type DatasetConfig struct {
	DataDir       string // Data directory path, for optional persistence
	MaxPoints     int64
	MaxDimensions int
	RateLimitQPS  int
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            50051,
			MaxConnections:  1000,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			EnableTLS:       false,
		},
		REST: RESTConfig{
			Enabled:          true,
			Host:             "0.0.0.0",
			Port:             8080,
			CORSEnabled:      true,
			CORSOrigins:      []string{"*"},
			AuthEnabled:      false,
			PublicPaths:      []string{"/v1/health", "/docs"},
			AdminPaths:       []string{},
			RateLimitEnabled: true,
			RateLimitPerSec:  100,
			RateLimitBurst:   200,
			RateLimitPerIP:   true,
		},
		KDTree: KDTreeConfig{
			ParallelBuildThreshold: 512,
		},
		Octree: OctreeConfig{
			MaxPointsPerLeaf: 16,
			MaxDepth:         12,
		},
		RANSAC: RANSACConfig{
			SuccessProbability: 0.99,
			Threshold:          0.01,
			MaxIterations:      1000,
			Workers:            1,
		},
		Cluster: ClusterConfig{
			Tolerance:      0.05,
			MinClusterSize: 10,
			MaxClusterSize: 0,
			MaxNbCluster:   100,
			DBSCANEps:      0.05,
			DBSCANMinPts:   5,
		},
		Hull: HullConfig{
			AlphaShapeDefault: 1.0,
		},
		Dataset: DatasetConfig{
			DataDir:       "./data",
			MaxPoints:     10_000_000,
			MaxDimensions: 4,
			RateLimitQPS:  100,
		},
	}
}

// LoadFromEnv loads configuration from environment variables, falling back
// to Default for anything unset.
func LoadFromEnv() *Config {
	cfg := Default()

	if host := os.Getenv("POINTCLOUD_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("POINTCLOUD_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if maxConn := os.Getenv("POINTCLOUD_MAX_CONNECTIONS"); maxConn != "" {
		if mc, err := strconv.Atoi(maxConn); err == nil {
			cfg.Server.MaxConnections = mc
		}
	}
	if timeout := os.Getenv("POINTCLOUD_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			cfg.Server.RequestTimeout = t
		}
	}
	if enableTLS := os.Getenv("POINTCLOUD_ENABLE_TLS"); enableTLS == "true" {
		cfg.Server.EnableTLS = true
		cfg.Server.CertFile = os.Getenv("POINTCLOUD_TLS_CERT")
		cfg.Server.KeyFile = os.Getenv("POINTCLOUD_TLS_KEY")
	}

	if threshold := os.Getenv("POINTCLOUD_KDTREE_PARALLEL_THRESHOLD"); threshold != "" {
		if v, err := strconv.Atoi(threshold); err == nil {
			cfg.KDTree.ParallelBuildThreshold = v
		}
	}

	if maxPts := os.Getenv("POINTCLOUD_OCTREE_MAX_POINTS"); maxPts != "" {
		if v, err := strconv.Atoi(maxPts); err == nil {
			cfg.Octree.MaxPointsPerLeaf = v
		}
	}
	if maxDepth := os.Getenv("POINTCLOUD_OCTREE_MAX_DEPTH"); maxDepth != "" {
		if v, err := strconv.Atoi(maxDepth); err == nil {
			cfg.Octree.MaxDepth = v
		}
	}

	if p := os.Getenv("POINTCLOUD_RANSAC_P"); p != "" {
		if v, err := strconv.ParseFloat(p, 64); err == nil {
			cfg.RANSAC.SuccessProbability = v
		}
	}
	if tau := os.Getenv("POINTCLOUD_RANSAC_THRESHOLD"); tau != "" {
		if v, err := strconv.ParseFloat(tau, 64); err == nil {
			cfg.RANSAC.Threshold = v
		}
	}
	if workers := os.Getenv("POINTCLOUD_RANSAC_WORKERS"); workers != "" {
		if v, err := strconv.Atoi(workers); err == nil {
			cfg.RANSAC.Workers = v
		}
	}

	if dataDir := os.Getenv("POINTCLOUD_DATA_DIR"); dataDir != "" {
		cfg.Dataset.DataDir = dataDir
	}

	if enabled := os.Getenv("POINTCLOUD_REST_ENABLED"); enabled != "" {
		cfg.REST.Enabled = enabled == "true"
	}
	if host := os.Getenv("POINTCLOUD_REST_HOST"); host != "" {
		cfg.REST.Host = host
	}
	if port := os.Getenv("POINTCLOUD_REST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.REST.Port = p
		}
	}
	if authEnabled := os.Getenv("POINTCLOUD_REST_AUTH_ENABLED"); authEnabled != "" {
		cfg.REST.AuthEnabled = authEnabled == "true"
	}
	if secret := os.Getenv("POINTCLOUD_REST_JWT_SECRET"); secret != "" {
		cfg.REST.JWTSecret = secret
	}

	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("invalid max connections: %d (must be > 0)", c.Server.MaxConnections)
	}
	if c.Server.EnableTLS {
		if c.Server.CertFile == "" || c.Server.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert or key file not specified")
		}
	}

	if c.KDTree.ParallelBuildThreshold < 1 {
		return fmt.Errorf("invalid kdtree parallel build threshold: %d (must be > 0)", c.KDTree.ParallelBuildThreshold)
	}

	if c.Octree.MaxPointsPerLeaf < 1 {
		return fmt.Errorf("invalid octree max points per leaf: %d (must be > 0)", c.Octree.MaxPointsPerLeaf)
	}
	if c.Octree.MaxDepth < 1 {
		return fmt.Errorf("invalid octree max depth: %d (must be > 0)", c.Octree.MaxDepth)
	}

	if c.RANSAC.SuccessProbability <= 0 || c.RANSAC.SuccessProbability >= 1 {
		return fmt.Errorf("invalid RANSAC success probability: %v (must be in (0,1))", c.RANSAC.SuccessProbability)
	}
	if c.RANSAC.MaxIterations < 1 {
		return fmt.Errorf("invalid RANSAC max iterations: %d (must be > 0)", c.RANSAC.MaxIterations)
	}

	if c.Dataset.DataDir == "" {
		return fmt.Errorf("data directory not specified")
	}

	if c.REST.Enabled {
		if c.REST.Port < 1 || c.REST.Port > 65535 {
			return fmt.Errorf("invalid REST port: %d (must be 1-65535)", c.REST.Port)
		}
		if c.REST.AuthEnabled && c.REST.JWTSecret == "" {
			return fmt.Errorf("REST auth enabled but JWT secret not specified")
		}
		if c.REST.RateLimitEnabled && c.REST.RateLimitPerSec <= 0 {
			return fmt.Errorf("invalid REST rate limit: %v (must be > 0)", c.REST.RateLimitPerSec)
		}
	}

	return nil
}

// Address returns the server address (host:port).
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
