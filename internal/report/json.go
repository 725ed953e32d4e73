package report

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/wonny/lotopt/internal/contracts"
	"github.com/wonny/lotopt/internal/optimizer"
	"github.com/wonny/lotopt/internal/risk"
)

// Float marshals non-finite values as the strings "+Inf", "-Inf" and "NaN".
// encoding/json rejects them otherwise, and a zero-downside ticker has Sortino = +Inf.
type Float float64

// MarshalJSON implements json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(FormatFloat(v))
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// MetricDTO per-ticker metrics for JSON output
type MetricDTO struct {
	Ticker            string `json:"ticker"`
	AnnualizedReturn  Float  `json:"annualized_return"`
	DownsideDeviation Float  `json:"downside_deviation"`
	Sortino           Float  `json:"sortino"`
	RiskFreeRate      Float  `json:"risk_free_rate"`
}

// CombinationDTO lot allocation for JSON output
type CombinationDTO struct {
	Holdings          []contracts.Holding `json:"holdings"`
	Cost              string              `json:"cost"`
	Scored            bool                `json:"scored"`
	Eligible          bool                `json:"eligible"`
	Score             *Float              `json:"score,omitempty"`
	ExpectedReturn    *Float              `json:"expected_return,omitempty"`
	DownsideDeviation *Float              `json:"downside_deviation,omitempty"`
}

// ResultDTO optimizer result for JSON output
type ResultDTO struct {
	RunID             string           `json:"run_id"`
	CatalogHash       string           `json:"catalog_hash"`
	Currency          string           `json:"currency"`
	LotSize           int64            `json:"lot_size"`
	Tickers           []string         `json:"tickers"`
	TotalInvestment   string           `json:"total_investment"`
	RiskFreeRate      Float            `json:"risk_free_rate"`
	TargetReturn      *Float           `json:"target_return,omitempty"`
	MaxLoss           *Float           `json:"max_loss,omitempty"`
	MinInvestment     string           `json:"min_investment"`
	MaxLots           map[string]int64 `json:"max_lots"`
	SearchSpace       int64            `json:"search_space"`
	Metrics           []MetricDTO      `json:"metrics"`
	Combinations      []CombinationDTO `json:"combinations,omitempty"`
	TotalCombinations int              `json:"total_combinations"`
	Scored            int              `json:"scored"`
	Eligible          int              `json:"eligible"`
	Best              *CombinationDTO  `json:"best,omitempty"`
	Success           bool             `json:"success"`
	CompletedStages   []string         `json:"completed_stages"`
	DurationMS        int64            `json:"duration_ms"`
}

// NewResultDTO converts an optimizer result
func NewResultDTO(r *optimizer.Result) ResultDTO {
	dto := ResultDTO{
		RunID:             r.RunID,
		CatalogHash:       r.CatalogHash,
		Currency:          r.Currency,
		LotSize:           r.LotSize,
		Tickers:           r.Input.Tickers,
		TotalInvestment:   r.Input.TotalInvestment.String(),
		RiskFreeRate:      Float(r.Input.RiskFreeRate),
		TargetReturn:      floatPtr(r.Input.TargetReturn),
		MaxLoss:           floatPtr(r.Input.MaxLoss),
		MinInvestment:     r.MinInvestment.String(),
		MaxLots:           r.MaxLots,
		SearchSpace:       r.SearchSpace,
		Metrics:           NewMetricDTOs(r.Metrics),
		TotalCombinations: r.TotalCombinations,
		Scored:            r.Scored,
		Eligible:          r.Eligible,
		Success:           r.Success,
		CompletedStages:   r.CompletedStages,
		DurationMS:        r.Duration.Milliseconds(),
	}

	if len(r.Combinations) > 0 {
		dto.Combinations = make([]CombinationDTO, len(r.Combinations))
		for i := range r.Combinations {
			dto.Combinations[i] = newCombinationDTO(&r.Combinations[i])
		}
	}
	if r.Best != nil {
		best := newCombinationDTO(r.Best)
		dto.Best = &best
	}

	return dto
}

// NewMetricDTOs converts per-ticker metrics
func NewMetricDTOs(metrics []risk.TickerMetrics) []MetricDTO {
	out := make([]MetricDTO, len(metrics))
	for i, m := range metrics {
		out[i] = MetricDTO{
			Ticker:            m.Ticker,
			AnnualizedReturn:  Float(m.AnnualizedReturn),
			DownsideDeviation: Float(m.DownsideDeviation),
			Sortino:           Float(m.Sortino),
			RiskFreeRate:      Float(m.RiskFreeRate),
		}
	}
	return out
}

// WriteResultJSON writes r as indented JSON
func WriteResultJSON(w io.Writer, r *optimizer.Result) error {
	return writeJSON(w, NewResultDTO(r))
}

// WriteRatiosJSON writes metrics as indented JSON
func WriteRatiosJSON(w io.Writer, metrics []risk.TickerMetrics) error {
	return writeJSON(w, NewMetricDTOs(metrics))
}

func newCombinationDTO(c *contracts.Combination) CombinationDTO {
	dto := CombinationDTO{
		Holdings: c.Holdings,
		Cost:     c.Cost.String(),
		Scored:   c.Scored,
		Eligible: c.Eligible,
	}
	if c.Scored {
		score, ret, dd := Float(c.Score), Float(c.ExpectedReturn), Float(c.DownsideDeviation)
		dto.Score = &score
		dto.ExpectedReturn = &ret
		dto.DownsideDeviation = &dd
	}
	return dto
}

func floatPtr(v *float64) *Float {
	if v == nil {
		return nil
	}
	f := Float(*v)
	return &f
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
