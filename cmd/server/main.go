package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpcserver "github.com/nyx-labs/pointcloud/pkg/api/grpc"
	"github.com/nyx-labs/pointcloud/pkg/api/rest"
	"github.com/nyx-labs/pointcloud/pkg/api/rest/middleware"
	"github.com/nyx-labs/pointcloud/pkg/config"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version and exit")
		showHelp    = flag.Bool("help", false, "show help and exit")
		configFile  = flag.String("config", "", "path to configuration file (optional)")
		host        = flag.String("host", "", "server host (overrides config/env)")
		port        = flag.Int("port", 0, "server port (overrides config/env)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Point Cloud Server v%s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if *showHelp {
		showUsage()
		os.Exit(0)
	}

	printBanner()

	cfg := loadConfig(*configFile)

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Println("Initializing point-cloud server...")
	grpcServer, err := grpcserver.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create gRPC server: %v", err)
	}

	printStartupInfo(cfg)

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("Starting gRPC server...")
		if err := grpcServer.Start(); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	var restServer *rest.Server
	if cfg.REST.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Wait a bit for gRPC server to start
			time.Sleep(500 * time.Millisecond)

			restConfig := rest.Config{
				Host:        cfg.REST.Host,
				Port:        cfg.REST.Port,
				GRPCAddress: cfg.Server.Address(),
				CORSEnabled: cfg.REST.CORSEnabled,
				CORSOrigins: cfg.REST.CORSOrigins,
				Auth: middleware.AuthConfig{
					Enabled:     cfg.REST.AuthEnabled,
					JWTSecret:   cfg.REST.JWTSecret,
					PublicPaths: cfg.REST.PublicPaths,
					AdminPaths:  cfg.REST.AdminPaths,
				},
				RateLimit: middleware.RateLimitConfig{
					Enabled:        cfg.REST.RateLimitEnabled,
					RequestsPerSec: cfg.REST.RateLimitPerSec,
					Burst:          cfg.REST.RateLimitBurst,
					PerIP:          cfg.REST.RateLimitPerIP,
					PerUser:        cfg.REST.RateLimitPerUser,
					GlobalLimit:    cfg.REST.RateLimitGlobal,
				},
			}

			var err error
			restServer, err = rest.NewServer(restConfig)
			if err != nil {
				errChan <- fmt.Errorf("failed to create REST server: %w", err)
				return
			}

			log.Println("Starting REST API server...")
			if err := restServer.Start(); err != nil {
				errChan <- fmt.Errorf("REST server error: %w", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	log.Println("Servers are ready. Press Ctrl+C to stop.")
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-errChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if restServer != nil {
		if err := restServer.Stop(ctx); err != nil {
			log.Printf("Error stopping REST server: %v", err)
		}
	}

	if err := grpcServer.Stop(); err != nil {
		log.Printf("Error stopping gRPC server: %v", err)
	}

	wg.Wait()

	log.Println("Servers stopped. Goodbye!")
}

func loadConfig(configFile string) *config.Config {
	// TODO: support loading from YAML/JSON config file
	if configFile != "" {
		log.Printf("Warning: config file support not yet implemented, using environment variables")
	}

	return config.LoadFromEnv()
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                                                           ║
║   ____       _       _      ____ _                 _    ║
║  |  _ \ ___ (_)_ __ | |_   / ___| | ___  _   _  __| |   ║
║  | |_) / _ \| | '_ \| __| | |   | |/ _ \| | | |/ _` + "`" + ` |   ║
║  |  __/ (_) | | | | | |_  | |___| | (_) | |_| | (_| |   ║
║  |_|   \___/|_|_| |_|\__|  \____|_|\___/ \__,_|\__,_|   ║
║                                                           ║
║   Spatial search, model fitting, clustering, hull and    ║
║   triangulation over 3D point clouds                     ║
║                                                           ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
	fmt.Printf("Version: %s (commit: %s)\n\n", version, commit)
}

func printStartupInfo(cfg *config.Config) {
	fmt.Println("\n╔════════════════════════════════════════════════════════╗")
	fmt.Println("║            gRPC Server Configuration                   ║")
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Printf("║ Address:          %-35s ║\n", cfg.Server.Address())
	fmt.Printf("║ TLS Enabled:      %-35v ║\n", cfg.Server.EnableTLS)
	fmt.Printf("║ Max Connections:  %-35d ║\n", cfg.Server.MaxConnections)
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Println("║            REST API Configuration                      ║")
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Printf("║ Enabled:          %-35v ║\n", cfg.REST.Enabled)
	if cfg.REST.Enabled {
		fmt.Printf("║ Address:          %-35s ║\n", fmt.Sprintf("%s:%d", cfg.REST.Host, cfg.REST.Port))
		fmt.Printf("║ Auth Enabled:     %-35v ║\n", cfg.REST.AuthEnabled)
		fmt.Printf("║ CORS Enabled:     %-35v ║\n", cfg.REST.CORSEnabled)
		fmt.Printf("║ Rate Limiting:    %-35v ║\n", cfg.REST.RateLimitEnabled)
		if cfg.REST.RateLimitEnabled {
			fmt.Printf("║ Rate:             %-35s ║\n", fmt.Sprintf("%.1f req/s (burst: %d)", cfg.REST.RateLimitPerSec, cfg.REST.RateLimitBurst))
		}
		fmt.Printf("║ API Docs:         %-35s ║\n", fmt.Sprintf("http://%s:%d/docs", cfg.REST.Host, cfg.REST.Port))
	}
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Println("║            KD-Tree / Octree Configuration              ║")
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Printf("║ KDTree parallel threshold: %-26d ║\n", cfg.KDTree.ParallelBuildThreshold)
	fmt.Printf("║ Octree max points/leaf:    %-26d ║\n", cfg.Octree.MaxPointsPerLeaf)
	fmt.Printf("║ Octree max depth:          %-26d ║\n", cfg.Octree.MaxDepth)
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Println("║            RANSAC Configuration                        ║")
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Printf("║ Success probability:       %-26v ║\n", cfg.RANSAC.SuccessProbability)
	fmt.Printf("║ Threshold:                 %-26v ║\n", cfg.RANSAC.Threshold)
	fmt.Printf("║ Max iterations:            %-26d ║\n", cfg.RANSAC.MaxIterations)
	fmt.Printf("║ Workers:                   %-26d ║\n", cfg.RANSAC.Workers)
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Println("║            Dataset Configuration                       ║")
	fmt.Println("╠════════════════════════════════════════════════════════╣")
	fmt.Printf("║ Data directory:            %-26s ║\n", cfg.Dataset.DataDir)
	fmt.Printf("║ Max points:                %-26d ║\n", cfg.Dataset.MaxPoints)
	fmt.Printf("║ Max dimensions:            %-26d ║\n", cfg.Dataset.MaxDimensions)
	fmt.Println("╚════════════════════════════════════════════════════════╝")
	fmt.Println()
}

func showUsage() {
	fmt.Println("Point Cloud Server - spatial search, RANSAC fitting, clustering, hull, triangulation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pointcloud-server [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -help             Show this help message")
	fmt.Println("  -version          Show version information")
	fmt.Println("  -config PATH      Accepted but not read; configuration comes from the environment")
	fmt.Println("  -host HOST        Server host (default: 0.0.0.0)")
	fmt.Println("  -port PORT        Server port (default: 50051)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  POINTCLOUD_HOST                       Server host")
	fmt.Println("  POINTCLOUD_PORT                       Server port")
	fmt.Println("  POINTCLOUD_MAX_CONNECTIONS             Max concurrent connections")
	fmt.Println("  POINTCLOUD_REQUEST_TIMEOUT             Request timeout (e.g., 30s)")
	fmt.Println("  POINTCLOUD_ENABLE_TLS                  Enable TLS (true/false)")
	fmt.Println("  POINTCLOUD_TLS_CERT                    TLS certificate file")
	fmt.Println("  POINTCLOUD_TLS_KEY                     TLS key file")
	fmt.Println("  POINTCLOUD_KDTREE_PARALLEL_THRESHOLD   KD-tree parallel build threshold")
	fmt.Println("  POINTCLOUD_OCTREE_MAX_POINTS            Octree max points per leaf")
	fmt.Println("  POINTCLOUD_OCTREE_MAX_DEPTH             Octree max depth")
	fmt.Println("  POINTCLOUD_RANSAC_P                    RANSAC success probability")
	fmt.Println("  POINTCLOUD_RANSAC_THRESHOLD            RANSAC inlier threshold")
	fmt.Println("  POINTCLOUD_RANSAC_WORKERS              RANSAC worker goroutines")
	fmt.Println("  POINTCLOUD_DATA_DIR                    Data directory path")
	fmt.Println("  POINTCLOUD_REST_ENABLED                Enable REST gateway (true/false)")
	fmt.Println("  POINTCLOUD_REST_HOST                   REST gateway host")
	fmt.Println("  POINTCLOUD_REST_PORT                   REST gateway port")
	fmt.Println("  POINTCLOUD_REST_AUTH_ENABLED           Enable JWT auth on REST gateway")
	fmt.Println("  POINTCLOUD_REST_JWT_SECRET              JWT signing secret")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Start with default configuration")
	fmt.Println("  pointcloud-server")
	fmt.Println()
	fmt.Println("  # Start on custom port")
	fmt.Println("  pointcloud-server -port 8080")
	fmt.Println()
	fmt.Println("  # Start with environment variables")
	fmt.Println("  POINTCLOUD_PORT=8080 POINTCLOUD_RANSAC_WORKERS=4 pointcloud-server")
	fmt.Println()
}
