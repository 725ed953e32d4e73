package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	catalogPath string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lotopt",
	Short: "Lot 단위 Sortino 포트폴리오 최적화",
	Long: `lotopt - lot allocation optimizer

종목별 연환산 수익률, 하방 편차, Sortino 비율을 계산하고
예산 안에서 가능한 모든 lot 조합 중 lot 가중 Sortino 비율이
가장 높은 조합을 찾습니다. (1 lot = 100주)

Usage:
  go run ./cmd/lotopt [command]

Examples:
  go run ./cmd/lotopt optimize --tickers BBCA,BMRI --budget 2000000
  go run ./cmd/lotopt optimize --interactive
  go run ./cmd/lotopt ratios
  go run ./cmd/lotopt catalog`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it with ctx.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: CATALOG_PATH or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
}
