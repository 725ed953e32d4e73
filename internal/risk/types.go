package risk

import "errors"

// =============================================================================
// Unit Convention
// =============================================================================

// ⭐ SSOT: 모든 수익률/하락률/무위험수익률은 퍼센트 단위 (10 = 10%)
// 분수(0.10)와 혼용하지 않는다

// DefaultRiskFreeRate 기본 무위험 수익률 (%)
const DefaultRiskFreeRate = 2.5

var (
	// ErrInvalidInput 계산 불가능한 입력 (빈 시계열, 정의되지 않는 복리 등)
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientData 표본 표준편차 계산에 필요한 샘플 부족 (n < 2)
	ErrInsufficientData = errors.New("insufficient data")
)

// =============================================================================
// Result Types
// =============================================================================

// TickerMetrics 종목별 위험/수익 지표
type TickerMetrics struct {
	Ticker            string  `json:"ticker"`
	AnnualizedReturn  float64 `json:"annualized_return"`  // 연환산 수익률 (%)
	DownsideDeviation float64 `json:"downside_deviation"` // 하방 편차 (%)
	Sortino           float64 `json:"sortino"`            // +Inf 가능 (하방 편차 0)
	RiskFreeRate      float64 `json:"risk_free_rate"`     // 계산에 사용한 무위험 수익률 (%)
}

// MetricsSet ticker → metrics
type MetricsSet map[string]TickerMetrics

// Sortino returns the Sortino ratio for ticker, false if unknown
func (m MetricsSet) Sortino(ticker string) (float64, bool) {
	tm, ok := m[ticker]
	return tm.Sortino, ok
}
