package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TomasB/geolookup/internal/cache"
	"github.com/TomasB/geolookup/internal/handler/health"
	"github.com/TomasB/geolookup/internal/handler/resolve"
	"github.com/TomasB/geolookup/internal/provider"
	"github.com/TomasB/geolookup/internal/resolver"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logging
	logLevel := getLogLevel(os.Getenv("LOG_LEVEL"))
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("service starting", "log_level", logLevel.String())

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Set Gin mode based on log level
	if logLevel == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(ginLogger(logger))
	router.Use(gin.Recovery())

	// Build the provider chain. Order encodes cost preference: free
	// public sources first, keyed sources after, local database last.
	providers := []provider.Provider{
		provider.NewIPAPI(),
		provider.NewIPInfo(os.Getenv("GEO_IPINFO_TOKEN")),
	}
	if key := os.Getenv("GEO_IPGEOLOCATION_API_KEY"); key != "" {
		providers = append(providers, provider.NewIPGeolocation(key))
		slog.Info("keyed provider enabled", "provider", "ipgeolocation")
	}
	if path := os.Getenv("GEO_MMDB_PATH"); path != "" {
		mmdb, err := provider.NewMMDB(path)
		if err != nil {
			slog.Error("failed to open MMDB", "path", path, "error", err)
			os.Exit(1)
		}
		defer mmdb.Close()
		providers = append(providers, mmdb)
		slog.Info("MMDB loaded", "path", path)
	}
	chain := provider.NewChain(providers...)

	var opts []resolver.Option
	if os.Getenv("GEO_COALESCE_LOOKUPS") == "true" {
		opts = append(opts, resolver.WithCoalescing())
		slog.Info("lookup coalescing enabled")
	}
	res := resolver.New(cache.New(cache.DefaultTTL), chain, opts...)

	// Register health endpoints
	healthHandler := health.NewHandler(func() error {
		if chain.Len() == 0 {
			return errors.New("no providers configured")
		}
		return nil
	})
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Register API endpoints
	resolveHandler := resolve.NewHandler(res)
	api := router.Group("/api/v1")
	{
		api.GET("/country", resolveHandler.Country)
		api.GET("/country/:ip", resolveHandler.CountryFor)
		api.GET("/cache/stats", resolveHandler.CacheStats)
		api.DELETE("/cache", resolveHandler.ClearCache)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("service started", "port", port, "providers", chain.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("service shutting down")

	// Graceful shutdown with 30s timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("service stopped")
}

// getLogLevel converts string log level to slog.Level
func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ginLogger creates a Gin middleware that logs using slog
func ginLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		// Log request
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		attrs := []any{
			"method", method,
			"path", path,
			"status", statusCode,
			"duration_ms", duration.Milliseconds(),
		}

		if len(c.Errors) > 0 {
			logger.Error("request completed with errors", append(attrs, "errors", c.Errors.String())...)
		} else if statusCode >= 500 {
			logger.Error("request completed", attrs...)
		} else if statusCode >= 400 {
			logger.Warn("request completed", attrs...)
		} else {
			logger.Info("request completed", attrs...)
		}
	}
}
