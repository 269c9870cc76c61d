package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/jyotish/backend/internal/benefic"
	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

// beneficCmd represents the benefic command
var beneficCmd = &cobra.Command{
	Use:   "benefic",
	Short: "7×12 베네픽 테이블 계산",
	Long: `출생 차트에서 7개 고전 천체의 12궁 베네픽 포인트를 계산합니다.

테이블은 다음을 반영합니다:
- 품위 (고양/본궁/우호/중립/적대)
- 트라인 및 군주 트라인 보너스
- 켄드라 지지, 낙샤트라 군주 보너스

Flags:
  --birth-date  출생 날짜 (YYYY-MM-DD, 필수)
  --birth-time  출생 시각 (HH:MM, 생략 시 태양 정오)
  --lat         위도
  --lon         경도
  --utc-offset  UTC 오프셋 (시간)

Example:
  go run ./cmd/astro benefic --birth-date 1990-04-15 --birth-time 06:30
  go run ./cmd/astro benefic --birth-date 1990-04-15 --lat 19.07 --lon 72.87`,
	RunE: runBenefic,
}

var (
	beneficBirthDate string
	beneficBirthTime string
	beneficLat       float64
	beneficLon       float64
	beneficUTCOffset float64
)

func init() {
	rootCmd.AddCommand(beneficCmd)

	// Flags
	beneficCmd.Flags().StringVar(&beneficBirthDate, "birth-date", "", "출생 날짜 (YYYY-MM-DD, 필수)")
	beneficCmd.Flags().StringVar(&beneficBirthTime, "birth-time", "", "출생 시각 (HH:MM)")
	beneficCmd.Flags().Float64Var(&beneficLat, "lat", 28.61, "위도")
	beneficCmd.Flags().Float64Var(&beneficLon, "lon", 77.21, "경도")
	beneficCmd.Flags().Float64Var(&beneficUTCOffset, "utc-offset", 5.5, "UTC 오프셋 (시간)")

	beneficCmd.MarkFlagRequired("birth-date")
}

func runBenefic(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Jyotish Benefic Tabulator ===")

	birth, err := time.Parse("2006-01-02", beneficBirthDate)
	if err != nil {
		return fmt.Errorf("invalid birth date: %w", err)
	}

	hasTime := false
	if beneficBirthTime != "" {
		clock, err := time.Parse("15:04", beneficBirthTime)
		if err != nil {
			return fmt.Errorf("invalid birth time: %w", err)
		}
		// Local wall clock shifted to UTC by the location offset
		birth = birth.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		birth = birth.Add(-time.Duration(beneficUTCOffset * float64(time.Hour)))
		hasTime = true
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
	tabulator := benefic.New(tables, log, nil)

	loc := contracts.Location{Lat: beneficLat, Lon: beneficLon, UTCOffset: beneficUTCOffset}

	natal, err := res.Resolve(context.Background(), birth, hasTime, loc, contracts.AllBodies)
	if err != nil {
		return fmt.Errorf("resolve natal chart: %w", err)
	}
	if natal.UsedDefaultTime {
		fmt.Println("\n⚠️  No birth time given; positions use solar noon")
	}

	result, err := tabulator.Tabulate(natal)
	if err != nil {
		return fmt.Errorf("tabulate: %w", err)
	}

	// 7×12 table, one row per classical body
	fmt.Printf("\n%-10s", "Body")
	for _, sign := range contracts.AllSigns {
		fmt.Printf(" %3s", sign.String()[:3])
	}
	fmt.Println("  Total")
	for _, body := range contracts.ClassicalBodies {
		table := result.Tables[body]
		fmt.Printf("%-10s", body.DisplayName())
		for _, p := range table.Points {
			fmt.Printf(" %3d", p)
		}
		fmt.Printf("  %5d (%s)\n", table.Total(), result.BodyStrength[body])
	}

	fmt.Printf("\n%-10s", "Average")
	for _, avg := range result.SignAverages {
		fmt.Printf(" %3d", avg)
	}
	fmt.Println()

	fmt.Printf("\n📊 Grand total: %d / 672\n", result.GrandTotal())
	if len(result.StrongSigns) > 0 {
		fmt.Printf("💪 Strong signs: %v\n", result.StrongSigns)
	}
	if len(result.WeakSigns) > 0 {
		fmt.Printf("📉 Weak signs: %v\n", result.WeakSigns)
	}
	if result.Degraded {
		fmt.Println("⚠️  Some positions were unavailable; confidence is reduced")
	}

	return nil
}
