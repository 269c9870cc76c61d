package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/internal/scheduler"
	"github.com/wonny/jyotish/backend/internal/scheduler/jobs"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

이 명령어는:
- 스케줄러 데몬 시작
- 등록된 작업 조회
- 특정 작업 즉시 실행

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/astro scheduler start
  go run ./cmd/astro scheduler list
  go run ./cmd/astro scheduler run panchanga_warm`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- panchanga_warm: 매일 자정 직후 (오늘/내일 판창가 캐시 예열)
- cache_prune: 매일 자정 직후 (만료된 트랜짓 캐시 정리)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runSchedulerDaemon,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listSchedulerJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runSchedulerDaemon(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Jyotish Scheduler ===")

	// Initialize dependencies
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listSchedulerJobs(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job started (running in background)")
	return nil
}

func initScheduler() (*scheduler.Scheduler, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to Redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "jyotish")
	rateLimiter := redis.NewRateLimiter(redisClient, "jyotish")

	// 4. Load reference tables
	tables, err := loadTables(cfg)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}

	// 5. Create ephemeris provider and resolver
	provider, err := ephemeris.New(cfg.Ephemeris, log, rateLimiter)
	if err != nil {
		return nil, fmt.Errorf("create ephemeris provider: %w", err)
	}
	res := resolver.New(provider, cfg.Ephemeris, log, nil)

	// 6. Create scheduler
	sched := scheduler.New(log)

	// 7. Register jobs
	if err := sched.AddJob(jobs.NewPanchangaWarmJob(res, tables, cache, log)); err != nil {
		return nil, fmt.Errorf("register panchanga_warm: %w", err)
	}
	if err := sched.AddJob(jobs.NewCachePruneJob(cache, log)); err != nil {
		return nil, fmt.Errorf("register cache_prune: %w", err)
	}

	return sched, nil
}
