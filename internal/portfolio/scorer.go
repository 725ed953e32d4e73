package portfolio

import (
	"errors"
	"fmt"

	"github.com/wonny/lotopt/internal/contracts"
	"github.com/wonny/lotopt/internal/risk"
)

// ErrMissingMetrics 조합 종목의 지표가 계산되지 않음
var ErrMissingMetrics = errors.New("missing ticker metrics")

// Filters optional eligibility thresholds, all in percent
type Filters struct {
	TargetReturn *float64 // lot 가중 기대수익률 하한 (%)
	MaxLoss      *float64 // lot 가중 하방편차 상한 (%)
}

// Scorer computes the lot-weighted Sortino ratio of a combination
type Scorer struct {
	metrics risk.MetricsSet
	filters Filters
}

// NewScorer creates a scorer over precomputed per-ticker metrics
func NewScorer(metrics risk.MetricsSet, filters Filters) *Scorer {
	return &Scorer{metrics: metrics, filters: filters}
}

// Score attaches score = Σ(sortino × lots) / total_lots.
//
// Zero-lot combinations are left unscored. Holdings with zero lots are skipped in
// the sum so an unheld +Inf ticker never turns the score into NaN.
func (s *Scorer) Score(c *contracts.Combination) error {
	totalLots := c.TotalLots()
	if totalLots <= 0 {
		c.Scored = false
		return nil
	}

	var sortinoSum, returnSum, ddSum float64
	for _, h := range c.Holdings {
		if h.Lots == 0 {
			continue
		}
		m, ok := s.metrics[h.Ticker]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingMetrics, h.Ticker)
		}
		lots := float64(h.Lots)
		sortinoSum += m.Sortino * lots
		returnSum += m.AnnualizedReturn * lots
		ddSum += m.DownsideDeviation * lots
	}

	n := float64(totalLots)
	c.Score = sortinoSum / n
	c.ExpectedReturn = returnSum / n
	c.DownsideDeviation = ddSum / n
	c.Scored = true

	return nil
}

// Eligible reports whether a scored combination passes the filters
func (s *Scorer) Eligible(c *contracts.Combination) bool {
	if !c.Scored {
		return false
	}
	if s.filters.TargetReturn != nil && c.ExpectedReturn < *s.filters.TargetReturn {
		return false
	}
	if s.filters.MaxLoss != nil && c.DownsideDeviation > *s.filters.MaxLoss {
		return false
	}
	return true
}
