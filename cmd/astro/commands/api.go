package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/jyotish/backend/internal/api"
	"github.com/wonny/jyotish/backend/internal/api/handlers"
	"github.com/wonny/jyotish/backend/internal/benefic"
	"github.com/wonny/jyotish/backend/internal/electional"
	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/evaluator"
	"github.com/wonny/jyotish/backend/internal/profile"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/database"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 길일 스캔 / 베네픽 테이블 엔드포인트 제공
- 트랜짓 웹소켓 스트림 제공

Endpoints:
  POST /api/electional/scan        - 길일 스캔
  GET  /api/electional/activities  - 활동 목록
  POST /api/benefics/tabulate      - 7×12 베네픽 테이블
  GET  /api/panchanga              - 일일 판창가
  GET  /api/transits               - 트랜짓 리포트
  GET  /ws/transits                - 트랜짓 스트림

Example:
  go run ./cmd/astro api
  go run ./cmd/astro api --port 8091`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Jyotish API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "jyotish")
	rateLimiter := redis.NewRateLimiter(redisClient, "jyotish")

	// 5. Initialize metrics
	m := metrics.New()

	// 6. Load reference tables
	tables, err := loadTables(cfg)
	if err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}

	hash, err := tables.Hash()
	if err != nil {
		return fmt.Errorf("hash reference tables: %w", err)
	}
	log.WithField("tables_hash", hash).Info("Reference tables loaded")

	// 7. Create ephemeris provider and resolver
	provider, err := ephemeris.New(cfg.Ephemeris, log, rateLimiter)
	if err != nil {
		return fmt.Errorf("create ephemeris provider: %w", err)
	}
	res := resolver.New(provider, cfg.Ephemeris, log, m)

	// 8. Create engine components
	eval := evaluator.New(tables, log)
	scanner := electional.New(res, eval, tables, log, m)
	tabulator := benefic.New(tables, log, m)

	// 9. Create repositories
	profileRepo := profile.NewRepository(db.Pool)

	// 10. Create handlers
	h := api.Handlers{
		Electional: handlers.NewElectionalHandler(scanner, tables, log),
		Benefic:    handlers.NewBeneficHandler(res, tabulator, profileRepo, cache, log, m),
		Panchanga:  handlers.NewPanchangaHandler(res, tables, cache, log, m),
		Transit:    handlers.NewTransitHandler(res, profileRepo, cache, log, m),
		Profile:    handlers.NewProfileHandler(profileRepo, log),
		Stream:     handlers.NewTransitStreamHandler(res, profileRepo, log),
	}

	// 11. Create router and server
	router := api.NewRouter(h, log, m)
	server := api.New(cfg, log, router)

	// 12. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/electional/scan")
	fmt.Println("  GET  /api/electional/activities")
	fmt.Println("  POST /api/benefics/tabulate")
	fmt.Println("  GET  /api/panchanga")
	fmt.Println("  GET  /api/transits")
	fmt.Println("  GET  /ws/transits")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// loadTables builds the reference store, applying the YAML override file
// when one is configured.
func loadTables(cfg *config.Config) (*reftables.Store, error) {
	if cfg.RefTablesPath != "" {
		return reftables.NewFromFile(cfg.RefTablesPath)
	}
	return reftables.New()
}
