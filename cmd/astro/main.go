package main

import (
	"os"

	"github.com/wonny/jyotish/backend/cmd/astro/commands"
)

// main is the entry point for the Jyotish CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/astro [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
