package risk

import (
	"fmt"

	"github.com/wonny/lotopt/pkg/logger"
)

// Engine 리스크 엔진 (순수 계산기)
// ⭐ SSOT: 카탈로그 조회/조합 생성은 상위 레이어(optimizer)에서 조립
// internal/risk는 순수 계산만 담당
type Engine struct {
	riskFreeRate float64
	logger       *logger.Logger
}

// NewEngine 새 리스크 엔진 생성
func NewEngine(riskFreeRate float64, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		riskFreeRate: riskFreeRate,
		logger:       log,
	}
}

// RiskFreeRate returns the rate used by this engine (%)
func (e *Engine) RiskFreeRate() float64 {
	return e.riskFreeRate
}

// Evaluate 단일 종목 지표 계산
// returns: 연도별 가격 변동률 (%)
// downside: 연도별 하락률 (%)
func (e *Engine) Evaluate(ticker string, returns, downside []float64) (TickerMetrics, error) {
	annual, err := AnnualizedReturn(returns)
	if err != nil {
		return TickerMetrics{}, fmt.Errorf("%s: annualized return: %w", ticker, err)
	}

	dd, err := DownsideDeviation(downside)
	if err != nil {
		return TickerMetrics{}, fmt.Errorf("%s: downside deviation: %w", ticker, err)
	}

	m := TickerMetrics{
		Ticker:            ticker,
		AnnualizedReturn:  annual,
		DownsideDeviation: dd,
		Sortino:           SortinoRatio(annual, dd, e.riskFreeRate),
		RiskFreeRate:      e.riskFreeRate,
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":             ticker,
		"annualized_return":  m.AnnualizedReturn,
		"downside_deviation": m.DownsideDeviation,
	}).Debugf("sortino=%.4f", m.Sortino)

	return m, nil
}

// Series 종목별 입력 시계열
type Series struct {
	Ticker   string
	Returns  []float64
	Downside []float64
}

// EvaluateAll 여러 종목 지표 일괄 계산 (첫 오류에서 중단)
func (e *Engine) EvaluateAll(series []Series) (MetricsSet, error) {
	set := make(MetricsSet, len(series))
	for _, s := range series {
		m, err := e.Evaluate(s.Ticker, s.Returns, s.Downside)
		if err != nil {
			return nil, err
		}
		set[s.Ticker] = m
	}
	return set, nil
}
