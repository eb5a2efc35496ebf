package inspection

import (
	"fmt"
	"time"

	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/legal"
	"github.com/carscope/carscope/pkg/scoring"
	"github.com/carscope/carscope/pkg/surface"
)

// Scorer abstracts the valuation engine so the inspection package does not
// depend on a concrete implementation.
type Scorer interface {
	Score(in scoring.ScoreInput) (*scoring.ScoreOutput, error)
}

// Evaluation is a form resolved against its template and scored.
type Evaluation struct {
	Items  []scoring.ChecklistResult `json:"items"`
	Flags  scoring.LegalFlags        `json:"legal_flags"`
	Counts checklist.Counts          `json:"counts"`
	Output *scoring.ScoreOutput      `json:"output"`
}

// Evaluate builds the checklist, derives legal flags as of now and scores the form.
// Any problem with the form itself is reported as ErrInvalidForm.
func Evaluate(scorer Scorer, form Form, now time.Time) (*Evaluation, error) {
	tmpl := form.Template
	if tmpl == nil {
		tmpl = checklist.Default()
	} else if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: template: %w", ErrInvalidForm, err)
	}

	res, err := checklist.Build(tmpl, form.Observations)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	flags := legal.Derive(form.Legal, now)

	out, err := scorer.Score(res.Input(form.MarketValue, flags))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return &Evaluation{
		Items:  res.Items,
		Flags:  flags,
		Counts: checklist.StatusCounts(res.Items),
		Output: out,
	}, nil
}

// Report wraps an evaluation for rendering.
func (e *Evaluation) Report(form Form) *surface.Report {
	r := surface.NewReport(form.Vehicle.Title(), form.MarketValue, e.Output)
	counts := e.Counts
	r.Counts = &counts
	return r
}
