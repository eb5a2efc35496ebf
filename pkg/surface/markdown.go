package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/carscope/carscope/pkg/scoring"
)

// MarkdownRenderer produces the shareable summary of a Report.
type MarkdownRenderer struct {
	// AsJSON wraps the markdown in a Summary and encodes it as JSON.
	AsJSON bool
}

func (r *MarkdownRenderer) Render(w io.Writer, report *Report) error {
	if !r.AsJSON {
		_, err := io.WriteString(w, buildMarkdownSummary(report))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.BuildSummary(report))
}

// BuildSummary creates the Summary struct from a Report.
func (r *MarkdownRenderer) BuildSummary(report *Report) Summary {
	title := fmt.Sprintf("Carscope: Grade %s · Health %d/100 · %s",
		report.Grade, report.Output.HealthScore, report.Output.Recommendation)
	if report.Title != "" {
		title = report.Title + " · " + title
	}
	return Summary{
		Title:          title,
		Markdown:       buildMarkdownSummary(report),
		Grade:          report.Grade,
		Color:          scoring.GradeColor(report.Grade).Hex(),
		HealthScore:    report.Output.HealthScore,
		Recommendation: report.Output.Recommendation,
	}
}

func recommendationIcon(rec scoring.Recommendation) string {
	switch rec {
	case scoring.RecommendYes:
		return ":green_circle:"
	case scoring.RecommendCaution:
		return ":orange_circle:"
	default:
		return ":red_circle:"
	}
}

func buildMarkdownSummary(report *Report) string {
	var sb strings.Builder
	out := report.Output

	if report.Title != "" {
		sb.WriteString(fmt.Sprintf("## %s\n\n", report.Title))
	}
	sb.WriteString(fmt.Sprintf("### %s %s · Grade %s · Health %d/100\n\n",
		recommendationIcon(out.Recommendation), out.Recommendation, report.Grade, out.HealthScore))

	market := NoValue
	if report.MarketValue > 0 {
		market = FormatINR(report.MarketValue)
	}
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Repair estimate | %s |\n", FormatINRRange(out.TotalRepairMin, out.TotalRepairMax)))
	sb.WriteString(fmt.Sprintf("| Market value | %s |\n", market))
	sb.WriteString(fmt.Sprintf("| Exposure | %d%% |\n", out.ExposurePercent))
	if c := report.Counts; c != nil {
		sb.WriteString(fmt.Sprintf("| Checklist | %d OK, %d minor, %d major, %d n/a |\n", c.OK, c.Minor, c.Major, c.NA))
	}
	sb.WriteString("\n")

	if len(out.CategoryTotals) > 0 {
		sb.WriteString("### Repair by group\n\n")
		sb.WriteString("| Group | Min | Max |\n|-------|-----|-----|\n")
		categoryTotals(out, func(g scoring.ScoreGroup, cr scoring.CostRange) {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", g, FormatINR(float64(cr.Min)), FormatINR(float64(cr.Max))))
		})
		sb.WriteString("\n")
	}

	if len(out.RecommendationReasons) > 0 {
		sb.WriteString("### Reasons\n\n")
		for _, reason := range out.RecommendationReasons {
			if isCap(out, reason) {
				sb.WriteString(fmt.Sprintf("- **%s** (score capped)\n", reason))
			} else {
				sb.WriteString(fmt.Sprintf("- **%s**\n", reason))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
