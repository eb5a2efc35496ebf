// Package surface renders valuation results for people: terminal output,
// shareable markdown summaries and JSON.
package surface

import (
	"io"

	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/scoring"
)

// Renderer produces formatted output from a Report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *Report) error
}

// Report is a valuation plus the context needed to present it.
type Report struct {
	Title       string               `json:"title,omitempty"` // e.g. "MH12AB1234 · Maruti Swift VXI"
	MarketValue float64              `json:"market_value"`
	Grade       scoring.Grade        `json:"grade"`
	Counts      *checklist.Counts    `json:"counts,omitempty"`
	Output      *scoring.ScoreOutput `json:"output"`
}

// NewReport wraps a ScoreOutput and derives its grade.
func NewReport(title string, marketValue float64, out *scoring.ScoreOutput) *Report {
	return &Report{
		Title:       title,
		MarketValue: marketValue,
		Grade:       scoring.HealthScoreToGrade(out.HealthScore),
		Output:      out,
	}
}

// Summary is the shareable digest of a report.
type Summary struct {
	Title          string                 `json:"title"`
	Markdown       string                 `json:"markdown"`
	Grade          scoring.Grade          `json:"grade"`
	Color          string                 `json:"color"` // hex
	HealthScore    int                    `json:"health_score"`
	Recommendation scoring.Recommendation `json:"recommendation"`
}

// categoryTotals yields the groups present in out in display order.
func categoryTotals(out *scoring.ScoreOutput, fn func(scoring.ScoreGroup, scoring.CostRange)) {
	for _, g := range scoring.ScoreGroups {
		if r, ok := out.CategoryTotals[g]; ok {
			fn(g, r)
		}
	}
}

func isCap(out *scoring.ScoreOutput, reason string) bool {
	for _, c := range out.Caps {
		if c == reason {
			return true
		}
	}
	return false
}
