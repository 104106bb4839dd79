package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/bore/internal/config"
	"github.com/agenthands/bore/internal/core"
	"github.com/agenthands/bore/internal/logger"
	"github.com/agenthands/bore/internal/metrics"
	"github.com/agenthands/bore/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Log.JSON {
		gin.SetMode(gin.ReleaseMode)
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = metrics.EnablePrometheus()
	}

	ctx := context.Background()
	b, err := core.Open(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open graph store", zap.Error(err))
	}
	defer func() { _ = b.Close(ctx) }()

	if err := b.BuildIndices(ctx); err != nil {
		zl.Warn("failed to build indices", zap.Error(err))
	}

	r := server.NewServer(b, zl, metricsHandler).SetupRouter()

	zl.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("memgraph", cfg.Memgraph.URI))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
