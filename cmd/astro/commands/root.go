package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "astro",
	Short: "Jyotish - 베딕 점성 시각 선정 엔진",
	Long: `Jyotish Unified CLI

규칙 기반 베딕 점성 스코어링 엔진.
위치 해석부터 길일 스캔, 7×12 베네픽 테이블까지.

Usage:
  go run ./cmd/astro [command]

Examples:
  go run ./cmd/astro api
  go run ./cmd/astro scan --activity wedding --start 2026-09-01 --end 2026-09-30
  go run ./cmd/astro benefic --birth-date 1990-04-15 --birth-time 06:30
  go run ./cmd/astro panchanga --date 2026-08-28
  go run ./cmd/astro scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
