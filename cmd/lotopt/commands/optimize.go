package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/lotopt/internal/optimizer"
	"github.com/wonny/lotopt/internal/portfolio"
	"github.com/wonny/lotopt/internal/report"
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "최적 lot 조합 탐색",
	Long: `예산 안에서 가능한 모든 lot 조합을 생성하고
lot 가중 Sortino 비율이 가장 높은 조합을 선택합니다.

Flags:
  --tickers        종목 코드 (쉼표/공백 구분)
  --budget         총 투자 금액
  --risk-free      무위험 수익률 (%, 기본: RISK_FREE_RATE 또는 2.5)
  --target-return  lot 가중 기대 수익률 하한 (%, 선택)
  --max-loss       lot 가중 하방 편차 상한 (%, 선택)
  --show-all       요약 전에 모든 조합 출력 (기본: true)
  --output         text | json
  --interactive    표준 입력으로 종목/예산 입력

Example:
  go run ./cmd/lotopt optimize --tickers BBCA,BMRI --budget 2000000
  go run ./cmd/lotopt optimize --tickers "BBCA BBRI BRIS" --budget 5000000 --max-loss 10
  go run ./cmd/lotopt optimize --interactive --output json`,
	RunE: runOptimize,
}

var (
	// Flags
	optTickers      string
	optBudget       string
	optRiskFree     float64
	optTargetReturn float64
	optMaxLoss      float64
	optShowAll      bool
	optOutput       string
	optInteractive  bool
)

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVar(&optTickers, "tickers", "", "종목 코드 (예: BBCA,BMRI)")
	optimizeCmd.Flags().StringVar(&optBudget, "budget", "", "총 투자 금액 (예: 2000000)")
	optimizeCmd.Flags().Float64Var(&optRiskFree, "risk-free", 0, "무위험 수익률 (%)")
	optimizeCmd.Flags().Float64Var(&optTargetReturn, "target-return", 0, "기대 수익률 하한 (%)")
	optimizeCmd.Flags().Float64Var(&optMaxLoss, "max-loss", 0, "하방 편차 상한 (%)")
	optimizeCmd.Flags().BoolVar(&optShowAll, "show-all", true, "모든 조합 출력")
	optimizeCmd.Flags().StringVarP(&optOutput, "output", "o", "text", "출력 형식 (text|json)")
	optimizeCmd.Flags().BoolVarP(&optInteractive, "interactive", "i", false, "대화형 입력")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(optOutput)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in, err := buildOptimizeInput(cmd, a.cfg.Optimizer.RiskFreeRate)
	if err != nil {
		return err
	}
	in.IncludeCombinations = format == report.FormatJSON || optShowAll

	result, runErr := a.optimizer.Run(cmd.Context(), in)
	if result == nil {
		return runErr
	}

	// 선택 실패(필터로 모두 제외)여도 요약은 출력한다
	if runErr != nil && !errors.Is(runErr, portfolio.ErrNoCombination) {
		return runErr
	}

	out := cmd.OutOrStdout()
	switch format {
	case report.FormatJSON:
		err = report.WriteResultJSON(out, result)
	default:
		err = report.WriteResult(out, result, report.TextOptions{ShowAll: optShowAll})
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return runErr
}

// buildOptimizeInput merges flags, interactive answers and config defaults into one Input
func buildOptimizeInput(cmd *cobra.Command, defaultRiskFree float64) (optimizer.Input, error) {
	in := optimizer.Input{RiskFreeRate: defaultRiskFree}

	flags := cmd.Flags()
	if flags.Changed("risk-free") {
		in.RiskFreeRate = optRiskFree
	}
	if flags.Changed("target-return") {
		v := optTargetReturn
		in.TargetReturn = &v
	}
	if flags.Changed("max-loss") {
		v := optMaxLoss
		in.MaxLoss = &v
	}

	if optInteractive {
		ans, err := promptInput(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return in, fmt.Errorf("interactive input: %w", err)
		}
		in.Tickers = ans.Tickers
		in.TotalInvestment = ans.Budget
		// 플래그가 우선
		if in.TargetReturn == nil {
			in.TargetReturn = ans.TargetReturn
		}
		if in.MaxLoss == nil {
			in.MaxLoss = ans.MaxLoss
		}
		return in, nil
	}

	in.Tickers = parseTickers(optTickers)
	if len(in.Tickers) == 0 {
		return in, fmt.Errorf("--tickers is required (or use --interactive)")
	}
	if optBudget == "" {
		return in, fmt.Errorf("--budget is required (or use --interactive)")
	}

	budget, err := parseBudget(optBudget)
	if err != nil {
		return in, err
	}
	in.TotalInvestment = budget

	return in, nil
}
