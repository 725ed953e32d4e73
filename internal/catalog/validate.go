package catalog

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// ValidationError 검증 실패 (로드 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeTicker trims and upper-cases a ticker code
func NormalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// Validate checks all required constraints and normalizes tickers in place
func Validate(cat *Catalog) error {
	cat.Currency = strings.ToUpper(strings.TrimSpace(cat.Currency))
	if cat.Currency == "" {
		return ValidationError{"currency", "required"}
	}
	if money.GetCurrency(cat.Currency) == nil {
		return ValidationError{"currency", fmt.Sprintf("unknown currency code %q", cat.Currency)}
	}

	if cat.LotSize == 0 {
		cat.LotSize = DefaultLotSize
	}
	if cat.LotSize < 0 {
		return ValidationError{"lot_size", "must be > 0"}
	}

	if len(cat.Stocks) == 0 {
		return ValidationError{"stocks", "at least one stock is required"}
	}

	seen := make(map[string]struct{}, len(cat.Stocks))
	for i := range cat.Stocks {
		s := &cat.Stocks[i]
		field := fmt.Sprintf("stocks[%d]", i)

		s.Ticker = NormalizeTicker(s.Ticker)
		if s.Ticker == "" {
			return ValidationError{field + ".ticker", "required"}
		}
		if _, dup := seen[s.Ticker]; dup {
			return ValidationError{field + ".ticker", fmt.Sprintf("duplicate ticker %s", s.Ticker)}
		}
		seen[s.Ticker] = struct{}{}

		if !s.Price.IsPositive() {
			return ValidationError{field + ".price", fmt.Sprintf("%s: must be > 0", s.Ticker)}
		}
		if len(s.Downside) == 0 {
			return ValidationError{field + ".downside", fmt.Sprintf("%s: series must not be empty", s.Ticker)}
		}
		if len(s.Returns) == 0 {
			return ValidationError{field + ".returns", fmt.Sprintf("%s: series must not be empty", s.Ticker)}
		}
	}

	return nil
}
