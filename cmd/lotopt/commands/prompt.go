package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var errNoAnswer = errors.New("input ended before all questions were answered")

// promptAnswers 대화형 입력 결과 (optimizer.Input으로 변환됨)
type promptAnswers struct {
	Tickers      []string
	Budget       decimal.Decimal
	TargetReturn *float64
	MaxLoss      *float64
}

// promptInput asks the interactive questions on w and reads answers from r.
// Target return and max loss are optional; an empty line skips them.
func promptInput(r io.Reader, w io.Writer) (promptAnswers, error) {
	var ans promptAnswers
	sc := bufio.NewScanner(r)

	line, err := ask(sc, w, "Enter the stock codes you're interested in (separated by space): ")
	if err != nil {
		return ans, err
	}
	ans.Tickers = parseTickers(line)
	if len(ans.Tickers) == 0 {
		return ans, fmt.Errorf("no stock codes entered")
	}

	line, err = ask(sc, w, "Enter your total investment amount: ")
	if err != nil {
		return ans, err
	}
	ans.Budget, err = parseBudget(line)
	if err != nil {
		return ans, err
	}

	if ans.TargetReturn, err = askOptionalPercent(sc, w, "Enter your target return in % (blank to skip): "); err != nil {
		return ans, err
	}
	if ans.MaxLoss, err = askOptionalPercent(sc, w, "Enter your maximum acceptable loss in % (blank to skip): "); err != nil {
		return ans, err
	}

	return ans, nil
}

func ask(sc *bufio.Scanner, w io.Writer, question string) (string, error) {
	if _, err := fmt.Fprint(w, question); err != nil {
		return "", err
	}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errNoAnswer
	}
	return strings.TrimSpace(sc.Text()), nil
}

// askOptionalPercent treats EOF like a blank answer
func askOptionalPercent(sc *bufio.Scanner, w io.Writer, question string) (*float64, error) {
	line, err := ask(sc, w, question)
	if errors.Is(err, errNoAnswer) || (err == nil && line == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parsePercent(line)
}

// parseTickers splits on whitespace and commas
func parseTickers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseBudget accepts "2000000", "2,000,000" or "2_000_000"
func parseBudget(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid investment amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("investment amount must be > 0, got %s", d)
	}
	return d, nil
}

// parsePercent accepts "10" or "10%"
func parsePercent(s string) (*float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return &v, nil
}
