package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// =============================================================================
// Pure Calculators
// =============================================================================

// AnnualizedReturn 연도별 수익률(%)의 기하평균 연환산 수익률(%)
// (Π(1 + r/100))^(1/n) - 1
func AnnualizedReturn(returns []float64) (float64, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: empty return series", ErrInvalidInput)
	}

	growth := make([]float64, len(returns))
	for i, r := range returns {
		growth[i] = 1 + r/100
	}

	compounded := floats.Prod(growth)
	if compounded <= 0 {
		// -100% 이하 연도가 있으면 n제곱근이 정의되지 않음
		return 0, fmt.Errorf("%w: compounded growth %.4f is not positive", ErrInvalidInput, compounded)
	}

	return (math.Pow(compounded, 1/float64(len(returns))) - 1) * 100, nil
}

// DownsideDeviation 하락률 시계열의 표본 표준편차 (분모 n-1)
// 빈 시계열: 0 (퇴화 케이스)
// 단일 원소: n-1 = 0 이므로 ErrInsufficientData
func DownsideDeviation(rates []float64) (float64, error) {
	switch len(rates) {
	case 0:
		return 0, nil
	case 1:
		return 0, fmt.Errorf("%w: downside deviation needs at least 2 samples, got 1", ErrInsufficientData)
	}

	return stat.StdDev(rates, nil), nil
}

// SortinoRatio (기대수익률 - 무위험수익률) / 하방편차
// 하방편차가 0이면 +Inf (무위험 자산은 무한히 매력적인 것으로 취급)
func SortinoRatio(expectedReturn, downsideDeviation, riskFreeRate float64) float64 {
	if downsideDeviation == 0 {
		return math.Inf(1)
	}
	return (expectedReturn - riskFreeRate) / downsideDeviation
}
