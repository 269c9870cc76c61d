package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/panchanga"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

// panchangaCmd represents the panchanga command
var panchangaCmd = &cobra.Command{
	Use:   "panchanga",
	Short: "일일 판창가 조회",
	Long: `지정된 날짜의 판창가 (티티/낙샤트라/요가/요일)를 계산합니다.

Example:
  go run ./cmd/astro panchanga
  go run ./cmd/astro panchanga --date 2026-08-28`,
	RunE: runPanchanga,
}

var panchangaDate string

func init() {
	rootCmd.AddCommand(panchangaCmd)

	// Flags
	panchangaCmd.Flags().StringVar(&panchangaDate, "date", "", "날짜 (YYYY-MM-DD, 기본: 오늘)")
}

func runPanchanga(cmd *cobra.Command, args []string) error {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if panchangaDate != "" {
		var err error
		date, err = time.Parse("2006-01-02", panchangaDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
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

	snap, err := res.Resolve(context.Background(), date, false, contracts.Location{}, []contracts.Body{contracts.Sun, contracts.Moon})
	if err != nil {
		return fmt.Errorf("resolve chart: %w", err)
	}

	p, err := panchanga.Compute(snap, date, tables)
	if err != nil {
		return fmt.Errorf("compute panchanga: %w", err)
	}

	fmt.Printf("=== Panchanga %s (%s) ===\n\n", p.Date, p.Weekday)
	phase := "waxing"
	if !p.Waxing {
		phase = "waning"
	}
	fmt.Printf("🌙 Tithi:     %d (%s)\n", p.Tithi, phase)
	fmt.Printf("⭐ Nakshatra: %d (%s)\n", p.Nakshatra, p.NakshatraName)
	fmt.Printf("🧘 Yoga:      %d\n", p.Yoga)
	if p.Rikta {
		fmt.Println("⚠️  Rikta tithi — inauspicious for new undertakings")
	}
	if p.InauspiciousYoga {
		fmt.Println("⚠️  Inauspicious yoga")
	}

	return nil
}
