package portfolio

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/lotopt/internal/catalog"
	"github.com/wonny/lotopt/internal/contracts"
	"github.com/wonny/lotopt/internal/risk"
)

func bankStocks(t *testing.T, tickers ...string) []catalog.StockRecord {
	t.Helper()
	cat, _, err := catalog.Default()
	require.NoError(t, err)
	stocks, err := cat.Lookup(tickers)
	require.NoError(t, err)
	return stocks
}

func bankMetrics(t *testing.T, stocks []catalog.StockRecord) risk.MetricsSet {
	t.Helper()
	engine := risk.NewEngine(risk.DefaultRiskFreeRate, nil)
	set := make(risk.MetricsSet, len(stocks))
	for _, s := range stocks {
		m, err := engine.Evaluate(s.Ticker, s.Returns, s.Downside)
		require.NoError(t, err)
		set[s.Ticker] = m
	}
	return set
}

func TestNewBudget(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")

	b, err := NewBudget(stocks, decimal.NewFromInt(2_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	assert.Equal(t, []string{"BBCA", "BMRI"}, b.Tickers)
	assert.Equal(t, []int64{2, 3}, b.MaxLots)
	assert.True(t, b.LotCosts[0].Equal(decimal.NewFromInt(880_000)))
	assert.True(t, b.LotCosts[1].Equal(decimal.NewFromInt(580_000)))
	assert.True(t, b.MinInvestment.Equal(decimal.NewFromInt(1_740_000)), b.MinInvestment.String())
	assert.Equal(t, int64(12), b.SearchSpace)
	assert.Equal(t, map[string]int64{"BBCA": 2, "BMRI": 3}, b.MaxLotsByTicker())
}

func TestNewBudget_Invalid(t *testing.T) {
	stocks := bankStocks(t, "BBCA")

	tests := []struct {
		name    string
		stocks  []catalog.StockRecord
		total   decimal.Decimal
		lotSize int64
	}{
		{"no tickers", nil, decimal.NewFromInt(1_000_000), 100},
		{"zero budget", stocks, decimal.Zero, 100},
		{"negative budget", stocks, decimal.NewFromInt(-5), 100},
		{"zero lot size", stocks, decimal.NewFromInt(1_000_000), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBudget(tt.stocks, tt.total, tt.lotSize)
			assert.ErrorIs(t, err, ErrInvalidBudget)
		})
	}
}

func TestNewBudget_BudgetBelowCheapestLot(t *testing.T) {
	stocks := bankStocks(t, "BBCA")

	b, err := NewBudget(stocks, decimal.NewFromInt(500_000), catalog.DefaultLotSize)
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, b.MaxLots)

	assert.True(t, b.MinInvestment.IsZero())

	// 0 lot 조합만 남고, 점수는 붙지 않는다
	combos, err := NewGenerator(b).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, int64(0), combos[0].TotalLots())

	_, err = Select(combos)
	assert.ErrorIs(t, err, ErrNoCombination)
}

func TestBudget_CheckSearchSpace(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")
	b, err := NewBudget(stocks, decimal.NewFromInt(2_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	assert.NoError(t, b.CheckSearchSpace(12))
	assert.NoError(t, b.CheckSearchSpace(0))
	assert.ErrorIs(t, b.CheckSearchSpace(11), ErrSearchSpaceTooLarge)
}

func TestMulSaturating(t *testing.T) {
	assert.Equal(t, int64(12), mulSaturating(3, 4))
	assert.Equal(t, int64(0), mulSaturating(0, 4))
	assert.Equal(t, int64(math.MaxInt64), mulSaturating(math.MaxInt64/2, 3))
}

func TestGenerator_Generate(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")
	b, err := NewBudget(stocks, decimal.NewFromInt(2_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	combos, err := NewGenerator(b).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, combos, 2)

	// product order: 마지막 종목이 가장 빠르게 변한다
	assert.Equal(t, "[(BBCA, 0), (BMRI, 3)]", combos[0].String())
	assert.True(t, combos[0].Cost.Equal(decimal.NewFromInt(1_740_000)))
	assert.Equal(t, "[(BBCA, 2), (BMRI, 0)]", combos[1].String())
	assert.True(t, combos[1].Cost.Equal(decimal.NewFromInt(1_760_000)))
}

func TestGenerator_Invariants(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI", "BBNI", "BBRI")
	total := decimal.NewFromInt(5_000_000)
	b, err := NewBudget(stocks, total, catalog.DefaultLotSize)
	require.NoError(t, err)

	combos, err := NewGenerator(b).Generate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, combos)

	seen := make(map[string]bool, len(combos))
	for _, c := range combos {
		require.Equal(t, len(stocks), c.Count())

		want := decimal.Zero
		for i, h := range c.Holdings {
			assert.Equal(t, stocks[i].Ticker, h.Ticker)
			assert.GreaterOrEqual(t, h.Lots, int64(0))
			assert.LessOrEqual(t, h.Lots, b.MaxLots[i])
			want = want.Add(stocks[i].LotCost(b.LotSize, h.Lots))
		}

		assert.True(t, c.Cost.Equal(want), "cost drift for %s", c.Key())
		assert.True(t, b.InRange(c.Cost), "%s out of range", c.Key())
		assert.False(t, seen[c.Key()], "duplicate %s", c.Key())
		seen[c.Key()] = true
	}
}

func TestGenerator_Idempotent(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI", "BRIS")
	b, err := NewBudget(stocks, decimal.NewFromInt(3_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	gen := NewGenerator(b)
	first, err := gen.Generate(context.Background())
	require.NoError(t, err)
	second, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerator_EarlyStop(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI", "BRIS")
	b, err := NewBudget(stocks, decimal.NewFromInt(3_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	n := 0
	for range NewGenerator(b).Enumerate(context.Background()) {
		n++
		if n == 1 {
			break
		}
	}
	assert.Equal(t, 1, n)
}

func TestGenerator_Cancelled(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")
	b, err := NewBudget(stocks, decimal.NewFromInt(2_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	combos, err := NewGenerator(b).Generate(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, combos)
}

func TestScorer_Score(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")
	scorer := NewScorer(bankMetrics(t, stocks), Filters{})

	c := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "BBCA", Lots: 0}, {Ticker: "BMRI", Lots: 3}}}
	require.NoError(t, scorer.Score(&c))
	assert.True(t, c.Scored)
	assert.InDelta(t, 0.8514754415705927, c.Score, 1e-9)
	assert.InDelta(t, 9.198120615265658, c.ExpectedReturn, 1e-9)
	assert.InDelta(t, 7.86648714484426, c.DownsideDeviation, 1e-9)

	mixed := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "BBCA", Lots: 1}, {Ticker: "BMRI", Lots: 1}}}
	require.NoError(t, scorer.Score(&mixed))
	assert.InDelta(t, (68.13245254224562+0.8514754415705927)/2, mixed.Score, 1e-6)
}

func TestScorer_ZeroLotsUnscored(t *testing.T) {
	scorer := NewScorer(risk.MetricsSet{}, Filters{})

	c := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "BBCA", Lots: 0}}}
	require.NoError(t, scorer.Score(&c))
	assert.False(t, c.Scored)
	assert.False(t, scorer.Eligible(&c))
}

func TestScorer_InfiniteSortinoUnheld(t *testing.T) {
	metrics := risk.MetricsSet{
		"SAFE": {Ticker: "SAFE", Sortino: math.Inf(1)},
		"RISK": {Ticker: "RISK", Sortino: 0.5, AnnualizedReturn: 4, DownsideDeviation: 3},
	}
	scorer := NewScorer(metrics, Filters{})

	c := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "SAFE", Lots: 0}, {Ticker: "RISK", Lots: 2}}}
	require.NoError(t, scorer.Score(&c))
	assert.False(t, math.IsNaN(c.Score))
	assert.Equal(t, 0.5, c.Score)

	held := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "SAFE", Lots: 1}, {Ticker: "RISK", Lots: 2}}}
	require.NoError(t, scorer.Score(&held))
	assert.True(t, math.IsInf(held.Score, 1))
}

func TestScorer_MissingMetrics(t *testing.T) {
	scorer := NewScorer(risk.MetricsSet{}, Filters{})

	c := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "BBCA", Lots: 1}}}
	assert.ErrorIs(t, scorer.Score(&c), ErrMissingMetrics)
}

func TestScorer_Filters(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")
	metrics := bankMetrics(t, stocks)

	bmri := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "BBCA", Lots: 0}, {Ticker: "BMRI", Lots: 3}}}
	bbca := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "BBCA", Lots: 2}, {Ticker: "BMRI", Lots: 0}}}

	target := 10.0
	s := NewScorer(metrics, Filters{TargetReturn: &target})
	require.NoError(t, s.Score(&bmri))
	require.NoError(t, s.Score(&bbca))
	assert.False(t, s.Eligible(&bmri))
	assert.True(t, s.Eligible(&bbca))

	maxLoss := 5.0
	s = NewScorer(metrics, Filters{MaxLoss: &maxLoss})
	assert.False(t, s.Eligible(&bmri))
	assert.True(t, s.Eligible(&bbca))
}

func TestSelector(t *testing.T) {
	a := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "A", Lots: 1}}, Scored: true, Score: 1}
	b := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "B", Lots: 1}}, Scored: true, Score: 3}
	tie := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "C", Lots: 1}}, Scored: true, Score: 3}
	nan := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "N", Lots: 1}}, Scored: true, Score: math.NaN()}
	unscored := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "U", Lots: 0}}}

	best, err := Select([]contracts.Combination{nan, a, unscored, b, tie})
	require.NoError(t, err)
	assert.Equal(t, "B:1", best.Key())

	inf := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "I", Lots: 1}}, Scored: true, Score: math.Inf(1)}
	best, err = Select([]contracts.Combination{b, inf})
	require.NoError(t, err)
	assert.Equal(t, "I:1", best.Key())

	neg := contracts.Combination{Holdings: []contracts.Holding{{Ticker: "N", Lots: 1}}, Scored: true, Score: -2}
	best, err = Select([]contracts.Combination{neg})
	require.NoError(t, err)
	assert.Equal(t, -2.0, best.Score)

	sel := NewSelector()
	assert.True(t, sel.Offer(a))
	assert.False(t, sel.Offer(nan))
	assert.Equal(t, 1, sel.Candidates())

	_, err = Select(nil)
	assert.ErrorIs(t, err, ErrNoCombination)
}

func TestPipeline_BBCA_BMRI(t *testing.T) {
	stocks := bankStocks(t, "BBCA", "BMRI")
	b, err := NewBudget(stocks, decimal.NewFromInt(2_000_000), catalog.DefaultLotSize)
	require.NoError(t, err)

	scorer := NewScorer(bankMetrics(t, stocks), Filters{})
	sel := NewSelector()
	for c := range NewGenerator(b).Enumerate(context.Background()) {
		require.NoError(t, scorer.Score(&c))
		if scorer.Eligible(&c) {
			sel.Offer(c)
		}
	}

	best, err := sel.Best()
	require.NoError(t, err)
	assert.Equal(t, "[(BBCA, 2), (BMRI, 0)]", best.String())
	assert.InDelta(t, 68.13245254224562, best.Score, 1e-6)
	assert.Equal(t, 2, sel.Candidates())
}
