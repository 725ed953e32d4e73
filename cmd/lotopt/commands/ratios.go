package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/lotopt/internal/report"
)

// ratiosCmd represents the ratios command
var ratiosCmd = &cobra.Command{
	Use:   "ratios",
	Short: "종목별 수익률/하방 편차/Sortino 비율",
	Long: `카탈로그 종목의 연환산 수익률, 하방 편차, Sortino 비율을 출력합니다.
--tickers가 없으면 카탈로그 전체를 계산합니다.

Example:
  go run ./cmd/lotopt ratios
  go run ./cmd/lotopt ratios --tickers BBCA,BMRI --risk-free 3
  go run ./cmd/lotopt ratios --output json`,
	RunE: runRatios,
}

var (
	ratiosTickers  string
	ratiosRiskFree float64
	ratiosOutput   string
)

func init() {
	rootCmd.AddCommand(ratiosCmd)

	ratiosCmd.Flags().StringVar(&ratiosTickers, "tickers", "", "종목 코드 (기본: 전체)")
	ratiosCmd.Flags().Float64Var(&ratiosRiskFree, "risk-free", 0, "무위험 수익률 (%)")
	ratiosCmd.Flags().StringVarP(&ratiosOutput, "output", "o", "text", "출력 형식 (text|json)")
}

func runRatios(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(ratiosOutput)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	rf := a.cfg.Optimizer.RiskFreeRate
	if cmd.Flags().Changed("risk-free") {
		rf = ratiosRiskFree
	}

	metrics, err := a.optimizer.Ratios(parseTickers(ratiosTickers), rf)
	if err != nil {
		return fmt.Errorf("compute ratios: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == report.FormatJSON {
		return report.WriteRatiosJSON(out, metrics)
	}
	return report.WriteRatios(out, metrics)
}
