package surface

import (
	"fmt"
	"io"
	"os"

	"github.com/carscope/carscope/pkg/scoring"
)

// TerminalRenderer renders a Report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(grade scoring.Grade) string {
	switch scoring.GradeColor(grade) {
	case scoring.ColorGreen:
		return colorGreen
	case scoring.ColorBlue:
		return colorBlue
	case scoring.ColorAmber, scoring.ColorOrange:
		return colorYellow
	default:
		return colorRed
	}
}

func recommendationColor(rec scoring.Recommendation) string {
	switch rec {
	case scoring.RecommendYes:
		return colorGreen
	case scoring.RecommendCaution:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report *Report) error {
	out := report.Output

	// Header
	fmt.Fprintf(w, "%s\n",
		bold(fmt.Sprintf("Carscope: Grade %s · Health %d/100 · %s",
			colored(string(report.Grade), gradeColor(report.Grade)),
			out.HealthScore,
			colored(string(out.Recommendation), recommendationColor(out.Recommendation)))))
	if report.Title != "" {
		fmt.Fprintln(w, dim(report.Title))
	}
	fmt.Fprintln(w)

	// Money
	market := NoValue
	if report.MarketValue > 0 {
		market = FormatINR(report.MarketValue)
	}
	fmt.Fprintf(w, "Repair estimate: %s\n", FormatINRRange(out.TotalRepairMin, out.TotalRepairMax))
	fmt.Fprintf(w, "Market value:    %s\n", market)
	fmt.Fprintf(w, "Exposure:        %d%%\n", out.ExposurePercent)
	if report.Counts != nil {
		c := report.Counts
		fmt.Fprintf(w, "Checklist:       %d OK / %d minor / %d major / %d n/a\n", c.OK, c.Minor, c.Major, c.NA)
	}
	fmt.Fprintln(w)

	// Category totals
	if len(out.CategoryTotals) > 0 {
		fmt.Fprintln(w, "Repair by group:")
		categoryTotals(out, func(g scoring.ScoreGroup, cr scoring.CostRange) {
			fmt.Fprintf(w, "  %-11s %s\n", g, FormatINRRange(cr.Min, cr.Max))
		})
		fmt.Fprintln(w)
	}

	// Reasons
	if len(out.RecommendationReasons) == 0 {
		fmt.Fprintln(w, "No caps or overrides.")
		fmt.Fprintln(w)
		return nil
	}
	fmt.Fprintln(w, "Reasons:")
	for _, reason := range out.RecommendationReasons {
		marker := "•"
		if isCap(out, reason) {
			marker = colored("●", colorRed)
		}
		fmt.Fprintf(w, "  %s %s\n", marker, reason)
	}
	fmt.Fprintln(w)

	return nil
}
