package portfolio

import (
	"errors"
	"math"

	"github.com/wonny/lotopt/internal/contracts"
)

// ErrNoCombination 선택 가능한 조합 없음
var ErrNoCombination = errors.New("no eligible combination")

// Selector keeps the best combination seen so far.
//
// Policy: maximize score. Ties keep the earliest candidate in enumeration order,
// +Inf beats every finite score and NaN is never selected.
type Selector struct {
	best       contracts.Combination
	found      bool
	candidates int
}

// NewSelector creates an empty selector
func NewSelector() *Selector {
	return &Selector{}
}

// Offer considers c and reports whether it became the new best
func (s *Selector) Offer(c contracts.Combination) bool {
	if !c.Scored || math.IsNaN(c.Score) {
		return false
	}
	s.candidates++

	if !s.found || c.Score > s.best.Score {
		s.best = c
		s.found = true
		return true
	}
	return false
}

// Best returns the selected combination
func (s *Selector) Best() (contracts.Combination, error) {
	if !s.found {
		return contracts.Combination{}, ErrNoCombination
	}
	return s.best, nil
}

// Candidates returns how many scored combinations were offered
func (s *Selector) Candidates() int {
	return s.candidates
}

// Select picks the best of already scored combinations
func Select(combos []contracts.Combination) (contracts.Combination, error) {
	sel := NewSelector()
	for _, c := range combos {
		sel.Offer(c)
	}
	return sel.Best()
}
