package portfolio

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/wonny/lotopt/internal/catalog"
)

var (
	// ErrInvalidBudget 예산 또는 종목 입력이 조합 생성에 부적합
	ErrInvalidBudget = errors.New("invalid budget")
	// ErrSearchSpaceTooLarge 전수 탐색 공간이 상한 초과 (fail-closed)
	ErrSearchSpaceTooLarge = errors.New("search space too large")
)

// Budget defines the lot allocation constraints
// ⭐ SSOT: 예산 제약(min/max investment, max lots)은 여기서만 계산
type Budget struct {
	Tickers         []string          // 입력 순서
	LotCosts        []decimal.Decimal // 1 lot 비용 (price × LotSize)
	MaxLots         []int64           // floor(total / lotCost)
	TotalInvestment decimal.Decimal   // 상한
	MinInvestment   decimal.Decimal   // 하한 (휴리스틱)
	LotSize         int64
	SearchSpace     int64 // Π(MaxLots+1), overflow 시 math.MaxInt64
}

// NewBudget computes lot limits for the given stocks.
//
// MinInvestment is total minus its remainder modulo the cheapest lot cost, i.e. the
// largest multiple of the cheapest lot not exceeding total. It is a heuristic floor
// that discards obviously under-invested allocations, not a true minimum.
func NewBudget(stocks []catalog.StockRecord, total decimal.Decimal, lotSize int64) (*Budget, error) {
	if len(stocks) == 0 {
		return nil, fmt.Errorf("%w: no tickers", ErrInvalidBudget)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total investment must be > 0, got %s", ErrInvalidBudget, total)
	}
	if lotSize <= 0 {
		return nil, fmt.Errorf("%w: lot size must be > 0, got %d", ErrInvalidBudget, lotSize)
	}

	b := &Budget{
		Tickers:         make([]string, len(stocks)),
		LotCosts:        make([]decimal.Decimal, len(stocks)),
		MaxLots:         make([]int64, len(stocks)),
		TotalInvestment: total,
		LotSize:         lotSize,
		SearchSpace:     1,
	}

	cheapest := decimal.Zero
	for i, s := range stocks {
		if !s.Price.IsPositive() {
			return nil, fmt.Errorf("%w: %s price must be > 0", ErrInvalidBudget, s.Ticker)
		}

		cost := s.LotCost(lotSize, 1)
		quotient, _ := total.QuoRem(cost, 0)

		b.Tickers[i] = s.Ticker
		b.LotCosts[i] = cost
		b.MaxLots[i] = quotient.IntPart()

		if i == 0 || cost.LessThan(cheapest) {
			cheapest = cost
		}

		b.SearchSpace = mulSaturating(b.SearchSpace, b.MaxLots[i]+1)
	}

	b.MinInvestment = total.Sub(total.Mod(cheapest))

	return b, nil
}

// CheckSearchSpace fails when the Cartesian product exceeds limit
func (b *Budget) CheckSearchSpace(limit int64) error {
	if limit > 0 && b.SearchSpace > limit {
		return fmt.Errorf("%w: %d tuples exceeds limit %d (tickers=%v max_lots=%v)",
			ErrSearchSpaceTooLarge, b.SearchSpace, limit, b.Tickers, b.MaxLots)
	}
	return nil
}

// MaxLotsByTicker returns max lots keyed by ticker
func (b *Budget) MaxLotsByTicker() map[string]int64 {
	out := make(map[string]int64, len(b.Tickers))
	for i, t := range b.Tickers {
		out[t] = b.MaxLots[i]
	}
	return out
}

// InRange reports whether cost lies in [MinInvestment, TotalInvestment]
func (b *Budget) InRange(cost decimal.Decimal) bool {
	return cost.GreaterThanOrEqual(b.MinInvestment) && cost.LessThanOrEqual(b.TotalInvestment)
}

func mulSaturating(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
