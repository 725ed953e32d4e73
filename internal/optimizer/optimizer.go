package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/lotopt/internal/catalog"
	"github.com/wonny/lotopt/internal/portfolio"
	"github.com/wonny/lotopt/internal/risk"
	"github.com/wonny/lotopt/pkg/logger"
)

// Optimizer coordinates catalog → metrics → budget → search → select
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Optimizer struct {
	catalog        *catalog.Catalog
	catalogHash    string
	maxSearchSpace int64
	logger         *logger.Logger
}

// New creates an optimizer over cat
// maxSearchSpace <= 0 disables the search-space guard
func New(cat *catalog.Catalog, maxSearchSpace int64, log *logger.Logger) (*Optimizer, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: catalog is required", ErrInvalidInput)
	}
	if log == nil {
		log = logger.Nop()
	}

	hash, err := catalog.Hash(cat)
	if err != nil {
		return nil, fmt.Errorf("hash catalog: %w", err)
	}

	return &Optimizer{
		catalog:        cat,
		catalogHash:    hash,
		maxSearchSpace: maxSearchSpace,
		logger:         log,
	}, nil
}

// CatalogHash returns the SHA-256 of the catalog in use
func (o *Optimizer) CatalogHash() string {
	return o.catalogHash
}

// Run executes one optimization.
// On failure after validation the partial result is returned together with the error.
func (o *Optimizer) Run(ctx context.Context, in Input) (*Result, error) {
	startTime := time.Now()

	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:           uuid.New().String(),
		CatalogHash:     o.catalogHash,
		Currency:        o.catalog.Currency,
		LotSize:         o.catalog.LotSize,
		Input:           in,
		CompletedStages: make([]string, 0, 5),
	}

	log := o.logger.WithField("run_id", result.RunID)
	log.WithFields(map[string]interface{}{
		"tickers":          in.Tickers,
		"total_investment": in.TotalInvestment.String(),
		"risk_free_rate":   in.RiskFreeRate,
	}).Info("Starting optimization run")

	fail := func(stage string, err error) (*Result, error) {
		result.Duration = time.Since(startTime)
		log.WithError(err).WithField("stage", stage).Warn("Optimization run failed")
		return result, fmt.Errorf("%s: %w", stage, err)
	}

	// Catalog
	stocks, err := o.catalog.Lookup(in.Tickers)
	if err != nil {
		return fail(StageCatalog, err)
	}
	result.CompletedStages = append(result.CompletedStages, StageCatalog)

	// Metrics
	series := make([]risk.Series, len(stocks))
	for i, s := range stocks {
		series[i] = risk.Series{Ticker: s.Ticker, Returns: s.Returns, Downside: s.Downside}
	}
	metrics, err := risk.NewEngine(in.RiskFreeRate, log).EvaluateAll(series)
	if err != nil {
		return fail(StageMetrics, err)
	}
	result.Metrics = make([]risk.TickerMetrics, len(stocks))
	for i, s := range stocks {
		result.Metrics[i] = metrics[s.Ticker]
	}
	result.CompletedStages = append(result.CompletedStages, StageMetrics)

	// Budget
	budget, err := portfolio.NewBudget(stocks, in.TotalInvestment, o.catalog.LotSize)
	if err != nil {
		return fail(StageBudget, err)
	}
	result.MinInvestment = budget.MinInvestment
	result.MaxLots = budget.MaxLotsByTicker()
	result.SearchSpace = budget.SearchSpace

	if err := budget.CheckSearchSpace(o.maxSearchSpace); err != nil {
		return fail(StageBudget, err)
	}
	result.CompletedStages = append(result.CompletedStages, StageBudget)

	log.WithFields(map[string]interface{}{
		"min_investment": budget.MinInvestment.String(),
		"max_lots":       budget.MaxLots,
		"search_space":   budget.SearchSpace,
	}).Debug("Budget computed")

	// Search + score
	scorer := portfolio.NewScorer(metrics, portfolio.Filters{
		TargetReturn: in.TargetReturn,
		MaxLoss:      in.MaxLoss,
	})
	selector := portfolio.NewSelector()

	for c := range portfolio.NewGenerator(budget).Enumerate(ctx) {
		if err := scorer.Score(&c); err != nil {
			return fail(StageSearch, err)
		}
		c.Eligible = scorer.Eligible(&c)

		result.TotalCombinations++
		if c.Scored {
			result.Scored++
		}
		if c.Eligible {
			result.Eligible++
			selector.Offer(c)
		}
		if in.IncludeCombinations {
			result.Combinations = append(result.Combinations, c)
		}
	}
	if err := ctx.Err(); err != nil {
		return fail(StageSearch, err)
	}
	result.CompletedStages = append(result.CompletedStages, StageSearch)

	// Select
	best, err := selector.Best()
	if err != nil {
		return fail(StageSelect, err)
	}
	result.Best = &best
	result.CompletedStages = append(result.CompletedStages, StageSelect)

	result.Success = true
	result.Duration = time.Since(startTime)

	log.WithFields(map[string]interface{}{
		"total_combinations": result.TotalCombinations,
		"eligible":           result.Eligible,
		"best":               best.String(),
		"score":              best.Score,
		"duration_ms":        result.Duration.Milliseconds(),
	}).Info("Optimization run completed")

	return result, nil
}

// Ratios computes per-ticker metrics without searching combinations.
// Empty tickers means the whole catalog in catalog order.
func (o *Optimizer) Ratios(tickers []string, riskFreeRate float64) ([]risk.TickerMetrics, error) {
	if len(tickers) == 0 {
		tickers = o.catalog.Tickers()
	}
	if !finite(riskFreeRate) {
		return nil, fmt.Errorf("%w: risk-free rate must be finite", ErrInvalidInput)
	}

	stocks, err := o.catalog.Lookup(tickers)
	if err != nil {
		return nil, err
	}

	engine := risk.NewEngine(riskFreeRate, o.logger)
	out := make([]risk.TickerMetrics, len(stocks))
	for i, s := range stocks {
		m, err := engine.Evaluate(s.Ticker, s.Returns, s.Downside)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// normalizeInput upper-cases tickers and rejects malformed requests
func normalizeInput(in Input) (Input, error) {
	if len(in.Tickers) == 0 {
		return in, fmt.Errorf("%w: at least one ticker is required", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(in.Tickers))
	tickers := make([]string, len(in.Tickers))
	for i, t := range in.Tickers {
		n := catalog.NormalizeTicker(t)
		if n == "" {
			return in, fmt.Errorf("%w: tickers[%d] is empty", ErrInvalidInput, i)
		}
		if seen[n] {
			return in, fmt.Errorf("%w: duplicate ticker %s", ErrInvalidInput, n)
		}
		seen[n] = true
		tickers[i] = n
	}
	in.Tickers = tickers

	if !in.TotalInvestment.IsPositive() {
		return in, fmt.Errorf("%w: total investment must be > 0, got %s", ErrInvalidInput, in.TotalInvestment)
	}
	if !finite(in.RiskFreeRate) {
		return in, fmt.Errorf("%w: risk-free rate must be finite", ErrInvalidInput)
	}
	if in.TargetReturn != nil && !finite(*in.TargetReturn) {
		return in, fmt.Errorf("%w: target return must be finite", ErrInvalidInput)
	}
	if in.MaxLoss != nil && (!finite(*in.MaxLoss) || *in.MaxLoss < 0) {
		return in, fmt.Errorf("%w: max loss must be a finite value >= 0", ErrInvalidInput)
	}

	return in, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
