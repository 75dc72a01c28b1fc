package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/bandarscan/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const ruleWidth = 59

// RunMetadata holds the header of a ranking run
type RunMetadata struct {
	Title  string
	RunID  string
	Mode   string
	Period *Period // Optional
}

// Period represents a date range
type Period struct {
	StartDate string
	EndDate   string
}

// PrintRunHeader prints a formatted run header
func PrintRunHeader(w io.Writer, meta RunMetadata) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s\n", meta.Title)
	PrintSeparator(w)
	fmt.Fprintf(w, "  Run ID    : %s\n", meta.RunID)
	fmt.Fprintf(w, "  Mode      : %s\n", meta.Mode)

	if meta.Period != nil {
		fmt.Fprintf(w, "  Period    : %s ~ %s\n", meta.Period.StartDate, meta.Period.EndDate)
	}

	PrintSeparator(w)
}

var rankingColumns = []string{"#", "SYMBOL", "PRICE", "AVG", "TARGET", "MAX", "PROX%", "GAIN%", "FLAG", "SECTOR"}
var rankingWidths = []int{3, 7, 8, 8, 8, 8, 8, 7, 7, 16}

// PrintRanking prints ranking rows as a table; failed rows show their error
func PrintRanking(w io.Writer, items []contracts.RankingItem) {
	if len(items) == 0 {
		PrintWarning(w, "Universe is empty")
		return
	}

	PrintTableHeader(w, rankingColumns, rankingWidths)
	for i, it := range items {
		if it.IsFailure() {
			PrintTableRow(w, []string{
				fmt.Sprintf("%d", i+1), it.Symbol, formatPrice(it.Price),
				"-", "-", "-", "-", "-", string(it.Flag), "❌ " + it.Error,
			}, rankingWidths)
			continue
		}
		PrintTableRow(w, []string{
			fmt.Sprintf("%d", i+1),
			it.Symbol,
			formatPrice(it.Price),
			formatPrice(it.AverageAccumulatorPrice),
			formatPrice(it.TargetRealistic),
			formatPrice(it.TargetMax),
			fmt.Sprintf("%.2f", it.ProximityPercentRealistic),
			fmt.Sprintf("%.1f", it.GainPercentRealistic),
			string(it.Flag),
			it.Sector,
		}, rankingWidths)
	}
}

func formatPrice(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("═", ruleWidth))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "⚠️  %s\n", message)
	fmt.Fprintln(w)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	var b strings.Builder
	for i, val := range values {
		if i < len(values)-1 {
			fmt.Fprintf(&b, "%-*s  ", widths[i], val)
			continue
		}
		b.WriteString(val)
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

// PrintList prints a bulleted list to stdout
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("   • %s\n", item)
	}
}
