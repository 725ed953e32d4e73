package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultLotSize 1 lot = 100주 (IDX 최소 거래 단위)
const DefaultLotSize int64 = 100

// ErrTickerNotFound 카탈로그에 없는 종목 요청 (KeyNotFound)
var ErrTickerNotFound = errors.New("ticker not found in catalog")

// StockRecord 종목 정적 데이터
// ⭐ 로드 후 불변: 계산 레이어는 읽기만 한다
type StockRecord struct {
	Ticker   string          `yaml:"ticker" json:"ticker"`
	Name     string          `yaml:"name,omitempty" json:"name,omitempty"`
	Price    decimal.Decimal `yaml:"price" json:"price"`       // 주당 가격 (> 0)
	Downside []float64       `yaml:"downside" json:"downside"` // 연도별 하락률 (%)
	Returns  []float64       `yaml:"returns" json:"returns"`   // 연도별 가격 변동률 (%)
}

// LotCost returns the cost of n lots of this stock
func (s StockRecord) LotCost(lotSize int64, n int64) decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(lotSize * n))
}

// Catalog 종목 카탈로그
// ⭐ SSOT: 전역 상태 대신 명시적으로 전달되는 설정 구조체
type Catalog struct {
	Currency string        `yaml:"currency" json:"currency"`
	LotSize  int64         `yaml:"lot_size" json:"lot_size"`
	Stocks   []StockRecord `yaml:"stocks" json:"stocks"`

	index map[string]int
}

// Get finds a stock record by ticker
func (c *Catalog) Get(ticker string) (StockRecord, error) {
	idx, ok := c.index[NormalizeTicker(ticker)]
	if !ok {
		return StockRecord{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return c.Stocks[idx], nil
}

// Lookup resolves tickers in order. The first missing ticker fails the whole lookup.
func (c *Catalog) Lookup(tickers []string) ([]StockRecord, error) {
	records := make([]StockRecord, 0, len(tickers))
	for _, t := range tickers {
		rec, err := c.Get(t)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Tickers returns all tickers in catalog order
func (c *Catalog) Tickers() []string {
	out := make([]string, len(c.Stocks))
	for i, s := range c.Stocks {
		out[i] = s.Ticker
	}
	return out
}

// Len returns the number of stocks
func (c *Catalog) Len() int {
	return len(c.Stocks)
}

func (c *Catalog) buildIndex() {
	c.index = make(map[string]int, len(c.Stocks))
	for i, s := range c.Stocks {
		c.index[s.Ticker] = i
	}
}
