package contracts

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding 종목별 lot 배분 (1 lot = LotSize주)
type Holding struct {
	Ticker string `json:"ticker"`
	Lots   int64  `json:"lots"` // >= 0
}

// Combination represents one candidate lot allocation
// ⭐ 계약: Generator가 Holdings/Cost를 만들고, Scorer가 점수를 한 번만 붙인다
type Combination struct {
	Holdings []Holding       `json:"holdings"` // 입력 종목 순서 유지
	Cost     decimal.Decimal `json:"cost"`     // 총 매수 금액

	// Scorer가 채움 (Scored=false면 무의미)
	Scored            bool    `json:"scored"`
	Score             float64 `json:"score"`              // lot 가중 Sortino
	ExpectedReturn    float64 `json:"expected_return"`    // lot 가중 연환산 수익률 (%)
	DownsideDeviation float64 `json:"downside_deviation"` // lot 가중 하방 편차 (%)

	// 필터(목표 수익률/최대 손실) 통과 여부, optimizer가 채움
	Eligible bool `json:"eligible"`
}

// TotalLots returns the sum of lots across holdings
func (c *Combination) TotalLots() int64 {
	var total int64
	for _, h := range c.Holdings {
		total += h.Lots
	}
	return total
}

// Count returns the number of holdings (including zero-lot ones)
func (c *Combination) Count() int {
	return len(c.Holdings)
}

// GetHolding finds a holding by ticker
func (c *Combination) GetHolding(ticker string) (*Holding, bool) {
	for i := range c.Holdings {
		if c.Holdings[i].Ticker == ticker {
			return &c.Holdings[i], true
		}
	}
	return nil, false
}

// Key returns the (ticker, lots) tuple identity, e.g. "BBCA:2|BMRI:0"
func (c *Combination) Key() string {
	parts := make([]string, len(c.Holdings))
	for i, h := range c.Holdings {
		parts[i] = fmt.Sprintf("%s:%d", h.Ticker, h.Lots)
	}
	return strings.Join(parts, "|")
}

// String formats holdings as [(BBCA, 2), (BMRI, 0)]
func (c *Combination) String() string {
	parts := make([]string, len(c.Holdings))
	for i, h := range c.Holdings {
		parts[i] = fmt.Sprintf("(%s, %d)", h.Ticker, h.Lots)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
