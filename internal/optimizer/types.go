package optimizer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/lotopt/internal/contracts"
	"github.com/wonny/lotopt/internal/risk"
)

// ErrInvalidInput 최적화 입력 검증 실패
var ErrInvalidInput = errors.New("invalid optimizer input")

// Stage names recorded in Result.CompletedStages
const (
	StageCatalog = "catalog"
	StageMetrics = "metrics"
	StageBudget  = "budget"
	StageSearch  = "search"
	StageSelect  = "select"
)

// Input holds one optimization request
// ⭐ 대화형 입력/CLI 플래그 모두 이 구조체로 변환된다
type Input struct {
	Tickers         []string        `json:"tickers"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	RiskFreeRate    float64         `json:"risk_free_rate"`          // %
	TargetReturn    *float64        `json:"target_return,omitempty"` // %, optional
	MaxLoss         *float64        `json:"max_loss,omitempty"`      // %, optional

	// true면 범위 내 모든 조합을 Result에 담는다
	IncludeCombinations bool `json:"include_combinations"`
}

// Result holds the outcome of a single optimizer run
type Result struct {
	RunID       string `json:"run_id"`
	CatalogHash string `json:"catalog_hash"`
	Currency    string `json:"currency"`
	LotSize     int64  `json:"lot_size"`
	Input       Input  `json:"input"`

	// Budget
	MinInvestment decimal.Decimal  `json:"min_investment"`
	MaxLots       map[string]int64 `json:"max_lots"`
	SearchSpace   int64            `json:"search_space"`

	// 입력 종목 순서
	Metrics []risk.TickerMetrics `json:"metrics"`

	Combinations      []contracts.Combination `json:"combinations,omitempty"`
	TotalCombinations int                     `json:"total_combinations"` // cost 범위 내 조합 수
	Scored            int                     `json:"scored"`             // total_lots > 0
	Eligible          int                     `json:"eligible"`           // 필터 통과

	Best    *contracts.Combination `json:"best,omitempty"`
	Success bool                   `json:"success"`

	CompletedStages []string      `json:"completed_stages"`
	Duration        time.Duration `json:"duration"`
}
