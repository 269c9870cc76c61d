package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/electional"
	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/evaluator"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "길일 스캔",
	Long: `지정된 기간에서 활동에 가장 길한 날을 찾습니다.

스캔은 다음을 수행합니다:
- 날짜별 차트 해석 (태양 정오 기준)
- 활동 규칙 세트 평가
- 등급/점수/날짜 순 랭킹

Flags:
  --activity    활동 이름 (기본: wedding)
  --start       시작 날짜 (YYYY-MM-DD, 필수)
  --end         종료 날짜 (YYYY-MM-DD, 기본: 시작 + 13일)
  --lat         위도 (기본: 28.61, 델리)
  --lon         경도
  --utc-offset  UTC 오프셋 (시간)

Example:
  go run ./cmd/astro scan --activity wedding --start 2026-09-01 --end 2026-09-30
  go run ./cmd/astro scan --activity travel --start 2026-09-01 --lat 19.07 --lon 72.87`,
	RunE: runScan,
}

var (
	scanActivity  string
	scanStart     string
	scanEnd       string
	scanLat       float64
	scanLon       float64
	scanUTCOffset float64
)

func init() {
	rootCmd.AddCommand(scanCmd)

	// Flags
	scanCmd.Flags().StringVar(&scanActivity, "activity", "wedding", "활동 이름")
	scanCmd.Flags().StringVar(&scanStart, "start", "", "시작 날짜 (YYYY-MM-DD, 필수)")
	scanCmd.Flags().StringVar(&scanEnd, "end", "", "종료 날짜 (YYYY-MM-DD)")
	scanCmd.Flags().Float64Var(&scanLat, "lat", 28.61, "위도")
	scanCmd.Flags().Float64Var(&scanLon, "lon", 77.21, "경도")
	scanCmd.Flags().Float64Var(&scanUTCOffset, "utc-offset", 5.5, "UTC 오프셋 (시간)")

	scanCmd.MarkFlagRequired("start")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Jyotish Electional Scan ===")

	// Parse dates
	start, err := time.Parse("2006-01-02", scanStart)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end := start.AddDate(0, 0, 13)
	if scanEnd != "" {
		end, err = time.Parse("2006-01-02", scanEnd)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	// Initialize dependencies
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	tables, err := loadTables(cfg)
	if err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}

	provider, err := ephemeris.New(cfg.Ephemeris, log, nil)
	if err != nil {
		return fmt.Errorf("create ephemeris provider: %w", err)
	}
	res := resolver.New(provider, cfg.Ephemeris, log, nil)
	scanner := electional.New(res, evaluator.New(tables, log), tables, log, nil)

	loc := contracts.Location{Lat: scanLat, Lon: scanLon, UTCOffset: scanUTCOffset}

	fmt.Printf("\n📅 Range: %s ~ %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Printf("🎯 Activity: %s\n", scanActivity)
	fmt.Printf("🌍 Location: %.2f, %.2f (UTC%+.1f)\n\n", scanLat, scanLon, scanUTCOffset)

	result, err := scanner.Scan(context.Background(), scanActivity, start, end, loc)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Printf("🏆 Best day: %s\n", result.Best.Date.Format("2006-01-02"))
	fmt.Printf("   Tier:   %s\n", result.Best.TierName)
	fmt.Printf("   Score:  %.0f\n", result.Best.TotalScore)
	for _, factor := range result.Best.Factors {
		fmt.Printf("   - %s\n", factor)
	}

	if len(result.Alternatives) > 0 {
		fmt.Println("\n✨ Alternatives:")
		for _, alt := range result.Alternatives {
			fmt.Printf("   %s  %-14s %.0f\n", alt.Date.Format("2006-01-02"), alt.TierName, alt.TotalScore)
		}
	}

	fmt.Printf("\n📊 Days scanned: %d\n", result.DaysScanned)
	if result.Truncated {
		fmt.Printf("⚠️  Range truncated to %d days\n", contracts.MaxScanDays)
	}
	if result.Degraded {
		fmt.Println("⚠️  Some positions were unavailable; confidence is reduced")
	}

	return nil
}
