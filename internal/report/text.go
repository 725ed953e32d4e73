package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wonny/lotopt/internal/catalog"
	"github.com/wonny/lotopt/internal/contracts"
	"github.com/wonny/lotopt/internal/optimizer"
	"github.com/wonny/lotopt/internal/risk"
)

const keyWidth = 16

// TextOptions controls the text result layout
type TextOptions struct {
	ShowAll bool // 범위 내 모든 조합을 요약 앞에 출력
}

// WriteResult renders an optimizer result as text.
// A result without Best (no eligible combination) still prints its summary.
func WriteResult(w io.Writer, r *optimizer.Result, opts TextOptions) error {
	p := NewPrinter(w)

	if opts.ShowAll {
		for i := range r.Combinations {
			p.Line("%s", combinationLine(&r.Combinations[i]))
		}
	}
	p.Line("Total Combination: %d", r.TotalCombinations)

	p.Header("Lot Optimization")
	p.KeyValue("Run ID", r.RunID, keyWidth)
	p.KeyValue("Catalog", shortHash(r.CatalogHash), keyWidth)
	p.KeyValue("Tickers", strings.Join(r.Input.Tickers, ", "), keyWidth)
	p.KeyValue("Budget", FormatAmount(r.Input.TotalInvestment, r.Currency), keyWidth)
	p.KeyValue("Min Investment", FormatAmount(r.MinInvestment, r.Currency), keyWidth)
	p.KeyValue("Max Lots", maxLotsLine(r), keyWidth)
	p.KeyValue("Risk-Free Rate", FormatPercent(r.Input.RiskFreeRate), keyWidth)
	if r.Input.TargetReturn != nil {
		p.KeyValue("Target Return", FormatPercent(*r.Input.TargetReturn), keyWidth)
	}
	if r.Input.MaxLoss != nil {
		p.KeyValue("Max Loss", FormatPercent(*r.Input.MaxLoss), keyWidth)
	}
	p.KeyValue("Eligible", fmt.Sprintf("%d / %d", r.Eligible, r.TotalCombinations), keyWidth)
	p.Separator()

	if r.Best == nil {
		p.Warning("No eligible combination")
		return p.Err()
	}

	p.Line("Best Combination: %s", r.Best.String())
	p.KeyValue("Sortino (lot)", FormatFloat(r.Best.Score), keyWidth)
	p.KeyValue("Cost", FormatAmount(r.Best.Cost, r.Currency), keyWidth)
	p.KeyValue("Expected Return", FormatPercent(r.Best.ExpectedReturn), keyWidth)
	p.KeyValue("Downside Dev.", FormatPercent(r.Best.DownsideDeviation), keyWidth)
	p.Success(fmt.Sprintf("Completed in %s", r.Duration.Round(time.Microsecond)))

	return p.Err()
}

// WriteRatios renders a per-ticker metrics table
func WriteRatios(w io.Writer, metrics []risk.TickerMetrics) error {
	p := NewPrinter(w)
	widths := []int{8, 18, 18, 20}

	p.TableHeader([]string{"TICKER", "ANNUAL RETURN", "DOWNSIDE DEV.", "SORTINO"}, widths)
	for _, m := range metrics {
		p.TableRow([]string{
			m.Ticker,
			FormatPercent(m.AnnualizedReturn),
			FormatPercent(m.DownsideDeviation),
			FormatFloat(m.Sortino),
		}, widths)
	}
	if len(metrics) > 0 {
		p.Line("\nRisk-free rate: %s", FormatPercent(metrics[0].RiskFreeRate))
	}

	return p.Err()
}

// WriteCatalog renders the stocks of cat
func WriteCatalog(w io.Writer, cat *catalog.Catalog, hash string) error {
	p := NewPrinter(w)
	widths := []int{8, 24, 18, 18}

	p.Header("Stock Catalog")
	p.KeyValue("Currency", cat.Currency, keyWidth)
	p.KeyValue("Lot Size", fmt.Sprintf("%d shares", cat.LotSize), keyWidth)
	p.KeyValue("Stocks", fmt.Sprintf("%d", cat.Len()), keyWidth)
	p.KeyValue("Hash", shortHash(hash), keyWidth)
	p.Separator()

	p.TableHeader([]string{"TICKER", "NAME", "PRICE", "LOT COST"}, widths)
	for _, s := range cat.Stocks {
		p.TableRow([]string{
			s.Ticker,
			s.Name,
			FormatAmount(s.Price, cat.Currency),
			FormatAmount(s.LotCost(cat.LotSize, 1), cat.Currency),
		}, widths)
	}

	return p.Err()
}

// combinationLine formats "[(BBCA, 2), (BMRI, 0)] 68.13..." with a marker for
// unscored or filtered combinations
func combinationLine(c *contracts.Combination) string {
	switch {
	case !c.Scored:
		return c.String() + " n/a"
	case !c.Eligible:
		return fmt.Sprintf("%s %s (filtered)", c.String(), FormatFloat(c.Score))
	default:
		return fmt.Sprintf("%s %s", c.String(), FormatFloat(c.Score))
	}
}

func maxLotsLine(r *optimizer.Result) string {
	parts := make([]string, 0, len(r.Input.Tickers))
	for _, t := range r.Input.Tickers {
		if n, ok := r.MaxLots[t]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", t, n))
		}
	}
	return strings.Join(parts, ", ")
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
