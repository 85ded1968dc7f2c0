package config

import (
	"os"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Test Server defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 50051 {
		t.Errorf("Expected port 50051, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxConnections != 1000 {
		t.Errorf("Expected max connections 1000, got %d", cfg.Server.MaxConnections)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("Expected request timeout 30s, got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.EnableTLS {
		t.Error("Expected TLS disabled by default")
	}

	// Test KDTree defaults
	if cfg.KDTree.ParallelBuildThreshold != 512 {
		t.Errorf("Expected ParallelBuildThreshold=512, got %d", cfg.KDTree.ParallelBuildThreshold)
	}

	// Test Octree defaults
	if cfg.Octree.MaxPointsPerLeaf != 16 {
		t.Errorf("Expected MaxPointsPerLeaf=16, got %d", cfg.Octree.MaxPointsPerLeaf)
	}
	if cfg.Octree.MaxDepth != 12 {
		t.Errorf("Expected MaxDepth=12, got %d", cfg.Octree.MaxDepth)
	}

	// Test RANSAC defaults
	if cfg.RANSAC.SuccessProbability != 0.99 {
		t.Errorf("Expected SuccessProbability=0.99, got %v", cfg.RANSAC.SuccessProbability)
	}
	if cfg.RANSAC.MaxIterations != 1000 {
		t.Errorf("Expected MaxIterations=1000, got %d", cfg.RANSAC.MaxIterations)
	}
	if cfg.RANSAC.Workers != 1 {
		t.Errorf("Expected Workers=1, got %d", cfg.RANSAC.Workers)
	}

	// Test Cluster defaults
	if cfg.Cluster.MinClusterSize != 10 {
		t.Errorf("Expected MinClusterSize=10, got %d", cfg.Cluster.MinClusterSize)
	}
	if cfg.Cluster.DBSCANMinPts != 5 {
		t.Errorf("Expected DBSCANMinPts=5, got %d", cfg.Cluster.DBSCANMinPts)
	}

	// Test Hull defaults
	if cfg.Hull.AlphaShapeDefault != 1.0 {
		t.Errorf("Expected AlphaShapeDefault=1.0, got %v", cfg.Hull.AlphaShapeDefault)
	}

	// Test Dataset defaults
	if cfg.Dataset.DataDir != "./data" {
		t.Errorf("Expected data dir ./data, got %s", cfg.Dataset.DataDir)
	}
	if cfg.Dataset.MaxDimensions != 4 {
		t.Errorf("Expected max dimensions 4, got %d", cfg.Dataset.MaxDimensions)
	}

	// Test REST defaults
	if !cfg.REST.Enabled {
		t.Error("Expected REST enabled by default")
	}
	if cfg.REST.Port != 8080 {
		t.Errorf("Expected REST port 8080, got %d", cfg.REST.Port)
	}
	if cfg.REST.AuthEnabled {
		t.Error("Expected REST auth disabled by default")
	}
	if !cfg.REST.RateLimitEnabled {
		t.Error("Expected REST rate limiting enabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	envVars := []string{
		"POINTCLOUD_HOST", "POINTCLOUD_PORT", "POINTCLOUD_MAX_CONNECTIONS",
		"POINTCLOUD_REQUEST_TIMEOUT", "POINTCLOUD_ENABLE_TLS",
		"POINTCLOUD_KDTREE_PARALLEL_THRESHOLD",
		"POINTCLOUD_OCTREE_MAX_POINTS", "POINTCLOUD_OCTREE_MAX_DEPTH",
		"POINTCLOUD_RANSAC_P", "POINTCLOUD_RANSAC_THRESHOLD", "POINTCLOUD_RANSAC_WORKERS",
		"POINTCLOUD_DATA_DIR",
		"POINTCLOUD_REST_ENABLED", "POINTCLOUD_REST_HOST", "POINTCLOUD_REST_PORT",
		"POINTCLOUD_REST_AUTH_ENABLED", "POINTCLOUD_REST_JWT_SECRET",
	}

	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
	}

	defer func() {
		for key, value := range originalEnv {
			if value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, value)
			}
		}
	}()

	os.Setenv("POINTCLOUD_HOST", "127.0.0.1")
	os.Setenv("POINTCLOUD_PORT", "8080")
	os.Setenv("POINTCLOUD_MAX_CONNECTIONS", "5000")
	os.Setenv("POINTCLOUD_REQUEST_TIMEOUT", "60s")
	os.Setenv("POINTCLOUD_ENABLE_TLS", "true")

	os.Setenv("POINTCLOUD_KDTREE_PARALLEL_THRESHOLD", "1024")
	os.Setenv("POINTCLOUD_OCTREE_MAX_POINTS", "32")
	os.Setenv("POINTCLOUD_OCTREE_MAX_DEPTH", "16")

	os.Setenv("POINTCLOUD_RANSAC_P", "0.999")
	os.Setenv("POINTCLOUD_RANSAC_THRESHOLD", "0.02")
	os.Setenv("POINTCLOUD_RANSAC_WORKERS", "4")

	os.Setenv("POINTCLOUD_DATA_DIR", "/var/lib/pointcloud")

	os.Setenv("POINTCLOUD_REST_ENABLED", "false")
	os.Setenv("POINTCLOUD_REST_HOST", "127.0.0.1")
	os.Setenv("POINTCLOUD_REST_PORT", "9090")
	os.Setenv("POINTCLOUD_REST_AUTH_ENABLED", "true")
	os.Setenv("POINTCLOUD_REST_JWT_SECRET", "test-secret")

	cfg := LoadFromEnv()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxConnections != 5000 {
		t.Errorf("Expected max connections 5000, got %d", cfg.Server.MaxConnections)
	}
	if cfg.Server.RequestTimeout != 60*time.Second {
		t.Errorf("Expected request timeout 60s, got %v", cfg.Server.RequestTimeout)
	}
	if !cfg.Server.EnableTLS {
		t.Error("Expected TLS enabled")
	}

	if cfg.KDTree.ParallelBuildThreshold != 1024 {
		t.Errorf("Expected ParallelBuildThreshold=1024, got %d", cfg.KDTree.ParallelBuildThreshold)
	}

	if cfg.Octree.MaxPointsPerLeaf != 32 {
		t.Errorf("Expected MaxPointsPerLeaf=32, got %d", cfg.Octree.MaxPointsPerLeaf)
	}
	if cfg.Octree.MaxDepth != 16 {
		t.Errorf("Expected MaxDepth=16, got %d", cfg.Octree.MaxDepth)
	}

	if cfg.RANSAC.SuccessProbability != 0.999 {
		t.Errorf("Expected SuccessProbability=0.999, got %v", cfg.RANSAC.SuccessProbability)
	}
	if cfg.RANSAC.Threshold != 0.02 {
		t.Errorf("Expected Threshold=0.02, got %v", cfg.RANSAC.Threshold)
	}
	if cfg.RANSAC.Workers != 4 {
		t.Errorf("Expected Workers=4, got %d", cfg.RANSAC.Workers)
	}

	if cfg.Dataset.DataDir != "/var/lib/pointcloud" {
		t.Errorf("Expected data dir /var/lib/pointcloud, got %s", cfg.Dataset.DataDir)
	}

	if cfg.REST.Enabled {
		t.Error("Expected REST disabled")
	}
	if cfg.REST.Host != "127.0.0.1" {
		t.Errorf("Expected REST host 127.0.0.1, got %s", cfg.REST.Host)
	}
	if cfg.REST.Port != 9090 {
		t.Errorf("Expected REST port 9090, got %d", cfg.REST.Port)
	}
	if !cfg.REST.AuthEnabled {
		t.Error("Expected REST auth enabled")
	}
	if cfg.REST.JWTSecret != "test-secret" {
		t.Errorf("Expected REST JWT secret test-secret, got %s", cfg.REST.JWTSecret)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	originalPort := os.Getenv("POINTCLOUD_PORT")
	defer func() {
		if originalPort == "" {
			os.Unsetenv("POINTCLOUD_PORT")
		} else {
			os.Setenv("POINTCLOUD_PORT", originalPort)
		}
	}()

	os.Setenv("POINTCLOUD_PORT", "invalid")
	cfg := LoadFromEnv()

	if cfg.Server.Port != 50051 {
		t.Errorf("Expected default port 50051 for invalid value, got %d", cfg.Server.Port)
	}
}

func TestLoadFromEnv_DefaultsWhenNotSet(t *testing.T) {
	envVars := []string{
		"POINTCLOUD_HOST", "POINTCLOUD_PORT", "POINTCLOUD_MAX_CONNECTIONS",
		"POINTCLOUD_REQUEST_TIMEOUT", "POINTCLOUD_ENABLE_TLS",
		"POINTCLOUD_KDTREE_PARALLEL_THRESHOLD",
		"POINTCLOUD_OCTREE_MAX_POINTS", "POINTCLOUD_OCTREE_MAX_DEPTH",
		"POINTCLOUD_RANSAC_P", "POINTCLOUD_RANSAC_THRESHOLD", "POINTCLOUD_RANSAC_WORKERS",
		"POINTCLOUD_DATA_DIR",
	}

	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}()

	cfg := LoadFromEnv()
	defaults := Default()

	if cfg.Server.Host != defaults.Server.Host {
		t.Errorf("Expected default host, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != defaults.Server.Port {
		t.Errorf("Expected default port, got %d", cfg.Server.Port)
	}
	if cfg.KDTree.ParallelBuildThreshold != defaults.KDTree.ParallelBuildThreshold {
		t.Errorf("Expected default parallel build threshold, got %d", cfg.KDTree.ParallelBuildThreshold)
	}
	if cfg.Dataset.DataDir != defaults.Dataset.DataDir {
		t.Errorf("Expected default data dir, got %s", cfg.Dataset.DataDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "Valid default config",
			config:  Default(),
			wantErr: false,
		},
		{
			name: "Invalid port (too low)",
			config: &Config{
				Server: ServerConfig{Port: 0},
			},
			wantErr: true,
		},
		{
			name: "Invalid port (too high)",
			config: &Config{
				Server: ServerConfig{Port: 70000},
			},
			wantErr: true,
		},
		{
			name: "Invalid kdtree threshold",
			config: &Config{
				Server: ServerConfig{Port: 50051, MaxConnections: 1},
				KDTree: KDTreeConfig{ParallelBuildThreshold: 0},
				Octree: OctreeConfig{MaxPointsPerLeaf: 1, MaxDepth: 1},
				RANSAC: RANSACConfig{SuccessProbability: 0.5, MaxIterations: 1},
				Dataset: DatasetConfig{DataDir: "./data"},
			},
			wantErr: true,
		},
		{
			name: "Invalid RANSAC success probability",
			config: &Config{
				Server:  ServerConfig{Port: 50051, MaxConnections: 1},
				KDTree:  KDTreeConfig{ParallelBuildThreshold: 1},
				Octree:  OctreeConfig{MaxPointsPerLeaf: 1, MaxDepth: 1},
				RANSAC:  RANSACConfig{SuccessProbability: 1.5, MaxIterations: 1},
				Dataset: DatasetConfig{DataDir: "./data"},
			},
			wantErr: true,
		},
		{
			name: "Missing data dir",
			config: &Config{
				Server:  ServerConfig{Port: 50051, MaxConnections: 1},
				KDTree:  KDTreeConfig{ParallelBuildThreshold: 1},
				Octree:  OctreeConfig{MaxPointsPerLeaf: 1, MaxDepth: 1},
				RANSAC:  RANSACConfig{SuccessProbability: 0.5, MaxIterations: 1},
				Dataset: DatasetConfig{DataDir: ""},
			},
			wantErr: true,
		},
		{
			name: "REST auth enabled without JWT secret",
			config: &Config{
				Server:  ServerConfig{Port: 50051, MaxConnections: 1},
				KDTree:  KDTreeConfig{ParallelBuildThreshold: 1},
				Octree:  OctreeConfig{MaxPointsPerLeaf: 1, MaxDepth: 1},
				RANSAC:  RANSACConfig{SuccessProbability: 0.5, MaxIterations: 1},
				Dataset: DatasetConfig{DataDir: "./data"},
				REST:    RESTConfig{Enabled: true, Port: 8080, AuthEnabled: true, JWTSecret: ""},
			},
			wantErr: true,
		},
		{
			name: "REST enabled with valid config",
			config: &Config{
				Server:  ServerConfig{Port: 50051, MaxConnections: 1},
				KDTree:  KDTreeConfig{ParallelBuildThreshold: 1},
				Octree:  OctreeConfig{MaxPointsPerLeaf: 1, MaxDepth: 1},
				RANSAC:  RANSACConfig{SuccessProbability: 0.5, MaxIterations: 1},
				Dataset: DatasetConfig{DataDir: "./data"},
				REST:    RESTConfig{Enabled: true, Port: 8080, RateLimitEnabled: true, RateLimitPerSec: 100},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{
		Host: "localhost",
		Port: 8080,
	}

	addr := cfg.Address()
	expected := "localhost:8080"

	if addr != expected {
		t.Errorf("Expected address %s, got %s", expected, addr)
	}

	defaultCfg := Default()
	addr = defaultCfg.Server.Address()
	expected = "0.0.0.0:50051"

	if addr != expected {
		t.Errorf("Expected default address %s, got %s", expected, addr)
	}
}
