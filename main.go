package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hagglekit/strategy-engine/internal/config"
	"github.com/hagglekit/strategy-engine/internal/guard"
	"github.com/hagglekit/strategy-engine/internal/metrics"
	"github.com/hagglekit/strategy-engine/internal/policy"
	"github.com/hagglekit/strategy-engine/internal/service"
	"github.com/hagglekit/strategy-engine/internal/store"
	transporthttp "github.com/hagglekit/strategy-engine/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting strategy engine...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Policy: %s v%s", cfg.PolicyType, policy.Version)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize admission guard
	ctx := context.Background()
	guardEngine, err := guard.New(ctx, guard.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize admission guard: %v", err)
	}

	// Initialize decision policy
	pol, err := policy.New(cfg.PolicyType, cfg.Policy)
	if err != nil {
		log.Fatalf("Failed to initialize policy: %v", err)
	}

	// Initialize metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize service
	svc := service.New(db, pol, guardEngine, m, cfg)

	// Create HTTP server
	e := transporthttp.NewServer(svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Strategy engine listening on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down strategy engine...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Strategy engine stopped")
}
