package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	singleLine = "───────────────────────────────────────────────────────────"
	doubleLine = "═══════════════════════════════════════════════════════════"
)

// Format output format of a report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an --output value
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text|json)", s)
	}
}

// Printer writes formatted report sections to w.
// The first write error sticks and later writes become no-ops.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a printer over w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Header prints a boxed title
func (p *Printer) Header(title string) {
	p.printf("\n%s\n  %s\n%s\n", doubleLine, title, singleLine)
}

// Separator prints a visual separator
func (p *Printer) Separator() {
	p.printf("%s\n", singleLine)
}

// DoubleSeparator prints a double-line separator
func (p *Printer) DoubleSeparator() {
	p.printf("%s\n", doubleLine)
}

// Line prints a raw line
func (p *Printer) Line(format string, args ...interface{}) {
	p.printf(format+"\n", args...)
}

// KeyValue prints an aligned key-value pair
func (p *Printer) KeyValue(key, value string, keyWidth int) {
	p.printf("  %-*s : %s\n", keyWidth, key, value)
}

// Success prints a success message
func (p *Printer) Success(message string) {
	p.printf("✅ %s\n", message)
}

// Warning prints a warning message
func (p *Printer) Warning(message string) {
	p.printf("⚠️  %s\n", message)
}

// TableHeader prints column titles and an underline
func (p *Printer) TableHeader(columns []string, widths []int) {
	p.TableRow(columns, widths)

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2
		}
	}
	p.printf("%s\n", strings.Repeat("─", total))
}

// TableRow prints a padded table row
func (p *Printer) TableRow(values []string, widths []int) {
	var b strings.Builder
	for i, val := range values {
		if i < len(values)-1 {
			fmt.Fprintf(&b, "%-*s  ", widths[i], val)
		} else {
			// 마지막 칸은 trailing space 없이
			b.WriteString(val)
		}
	}
	p.printf("%s\n", b.String())
}

// FormatFloat prints v with full precision, "+Inf"/"-Inf"/"NaN" for non-finite values
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatPercent prints v as a fixed 4-decimal percentage
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatFloat(v)
	}
	return strconv.FormatFloat(v, 'f', 4, 64) + "%"
}
