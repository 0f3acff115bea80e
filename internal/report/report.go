// Package report renders a classification ranking for humans: alert banner,
// ranked table, bar chart, and summary stats. CSV export lives in csv.go.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"deepscan/internal/classify"
	"deepscan/internal/format"
)

// DefaultChartTop is how many entries the bar chart shows.
const DefaultChartTop = 10

// DefaultChartWidth is the bar width, in cells, of a 100% bar.
const DefaultChartWidth = 40

// tierMessages are the user-facing alert lines, one per tier.
var tierMessages = map[classify.Tier]string{
	classify.TierHigh:   "High confidence AI-generated content detected!",
	classify.TierMedium: "Possible AI-generated content detected.",
	classify.TierLow:    "Low probability of AI-generated content.",
}

var tierColors = map[classify.Tier]text.Colors{
	classify.TierHigh:   {text.FgHiRed, text.Bold},
	classify.TierMedium: {text.FgHiYellow, text.Bold},
	classify.TierLow:    {text.FgHiGreen},
}

// Banner returns the alert line for the top prediction, colored by tier.
func Banner(tier classify.Tier, top classify.Entry) string {
	msg := tierMessages[tier]
	line := tierColors[tier].Sprintf("[%s] %s", strings.ToUpper(string(tier)), msg)
	return fmt.Sprintf("%s\nMost likely classification: %s (%s)",
		line, classify.DisplayNameWithCode(top.Label), format.FmtPercent(top.Percent))
}

// Table renders the full ranking as a two-column table with a totals
// footer. Column headers match the CSV contract: "Label Name",
// "Probability (%)".
func Table(r classify.Ranking, mode format.Mode) string {
	tbl := format.NewTable(mode)
	tbl.Header("Label Name", "Probability (%)")
	tbl.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	var total float64
	for _, e := range r {
		tbl.Row(e.Label, fmt.Sprintf("%.2f", e.Percent))
		total += e.Percent
	}
	tbl.Footer("Total", fmt.Sprintf("%.2f", total))
	return tbl.String()
}

// Chart renders a horizontal bar chart of the top entries. Bars are scaled
// to the highest percentage so the top entry always spans the full width.
func Chart(r classify.Ranking, top, width int) string {
	if top <= 0 {
		top = DefaultChartTop
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	if top > len(r) {
		top = len(r)
	}
	if top == 0 {
		return ""
	}

	labelWidth := 0
	for _, e := range r[:top] {
		if len(e.Label) > labelWidth {
			labelWidth = len(e.Label)
		}
	}
	scale := r[0].Percent
	if scale <= 0 {
		scale = 1
	}

	var b strings.Builder
	for _, e := range r[:top] {
		cells := int(e.Percent / scale * float64(width))
		if cells == 0 && e.Percent > 0 {
			cells = 1
		}
		fmt.Fprintf(&b, "%-*s %s %s\n", labelWidth, e.Label,
			strings.Repeat("█", cells)+strings.Repeat(" ", width-cells),
			format.FmtPercent(e.Percent))
	}
	return b.String()
}

// Stats renders the summary statistics block.
func Stats(s classify.Stats, mode format.Mode) string {
	tbl := format.NewTable(mode)
	tbl.Header("Metric", "Value")
	tbl.Row("Highest probability", format.FmtPercent(s.Highest))
	tbl.Row("Lowest probability", format.FmtPercent(s.Lowest))
	tbl.Row("Average probability", format.FmtPercent(s.Mean))
	tbl.Row("Predictions > 10%", fmt.Sprintf("%d", s.AboveTen))
	return tbl.String()
}
