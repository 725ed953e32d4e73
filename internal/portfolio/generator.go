package portfolio

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/wonny/lotopt/internal/contracts"
)

// ctxCheckMask 컨텍스트 취소 확인 주기 (4096 튜플마다)
const ctxCheckMask = 1<<12 - 1

// Generator enumerates lot combinations within a Budget
// ⭐ SSOT: 조합 생성 로직은 여기서만
//
// Enumeration is the full Cartesian product of 0..MaxLots per ticker with no
// pruning, so cost is O(Π(MaxLots+1)). Budget.CheckSearchSpace bounds it.
type Generator struct {
	budget *Budget
}

// NewGenerator creates a generator for budget
func NewGenerator(budget *Budget) *Generator {
	return &Generator{budget: budget}
}

// Enumerate lazily yields every combination whose cost lies in
// [MinInvestment, TotalInvestment].
//
// Order is product order: tickers in input order, the last ticker varies fastest,
// lot counts ascend. Each (ticker, lots) tuple is visited exactly once, so no
// de-duplication is needed. Iteration stops early when ctx is cancelled; callers
// check ctx.Err() afterwards.
func (g *Generator) Enumerate(ctx context.Context) iter.Seq[contracts.Combination] {
	return func(yield func(contracts.Combination) bool) {
		b := g.budget
		n := len(b.MaxLots)
		if n == 0 {
			return
		}

		lots := make([]int64, n)
		cost := decimal.Zero

		for visited := 0; ; visited++ {
			if visited&ctxCheckMask == 0 && ctx.Err() != nil {
				return
			}

			if b.InRange(cost) {
				if !yield(g.combination(lots, cost)) {
					return
				}
			}

			// odometer: 마지막 자리부터 증가, 넘치면 0으로 되돌리고 자리올림
			i := n - 1
			for ; i >= 0; i-- {
				if lots[i] < b.MaxLots[i] {
					lots[i]++
					cost = cost.Add(b.LotCosts[i])
					break
				}
				cost = cost.Sub(b.LotCosts[i].Mul(decimal.NewFromInt(lots[i])))
				lots[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Generate materializes Enumerate
func (g *Generator) Generate(ctx context.Context) ([]contracts.Combination, error) {
	var out []contracts.Combination
	for c := range g.Enumerate(ctx) {
		out = append(out, c)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Generator) combination(lots []int64, cost decimal.Decimal) contracts.Combination {
	holdings := make([]contracts.Holding, len(lots))
	for i, l := range lots {
		holdings[i] = contracts.Holding{Ticker: g.budget.Tickers[i], Lots: l}
	}
	return contracts.Combination{Holdings: holdings, Cost: cost}
}
