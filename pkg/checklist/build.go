package checklist

import (
	"errors"
	"fmt"
	"sort"

	"github.com/carscope/carscope/pkg/scoring"
)

// ErrUnknownItem is returned when an observation names an item the template lacks.
var ErrUnknownItem = errors.New("item not in template")

// Observation is what an inspector recorded against one template item.
// A nil CostSeverity means the inspector accepted the suggested severity.
type Observation struct {
	Status       scoring.ChecklistStatus `json:"status" yaml:"status"`
	CostSeverity *scoring.CostSeverity   `json:"cost_severity,omitempty" yaml:"cost_severity,omitempty"`
	WorkDone     string                  `json:"work_done,omitempty" yaml:"work_done,omitempty"`
	Notes        string                  `json:"notes,omitempty" yaml:"notes,omitempty"`
	TreadDepth   string                  `json:"tread_depth,omitempty" yaml:"tread_depth,omitempty"`
}

// Observations are keyed by item ID.
type Observations map[string]Observation

// Result is a template fully resolved against a set of observations.
type Result struct {
	Items          []scoring.ChecklistResult
	EngineReplaced bool
}

// Input assembles the engine input for this result.
func (r *Result) Input(marketValue float64, legal scoring.LegalFlags) scoring.ScoreInput {
	return scoring.ScoreInput{
		MarketValue:    marketValue,
		Checklist:      r.Items,
		Legal:          legal,
		EngineReplaced: r.EngineReplaced,
	}
}

// Build produces one ChecklistResult per template item, in template order.
// Items without an observation are recorded as OK with no cost impact.
func Build(t *Template, obs Observations) (*Result, error) {
	var unknown []string
	for id := range obs {
		if _, _, ok := t.Lookup(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("observation %q: %w", unknown[0], ErrUnknownItem)
	}

	res := &Result{Items: make([]scoring.ChecklistResult, 0, t.ItemCount())}
	for _, c := range t.Categories {
		for _, item := range c.Items {
			o, ok := obs[item.ID]
			status := scoring.StatusOK
			if ok && o.Status != "" {
				status = o.Status
			}
			if !status.Valid() {
				return nil, fmt.Errorf("observation %q: %w",
					item.ID, scoring.NewValidationError("status", string(status), scoring.ErrUnknownStatus))
			}

			severity := scoring.SuggestedSeverity(status, item.ItemType)
			if ok && o.CostSeverity != nil {
				severity = *o.CostSeverity
			}
			if !severity.Valid() {
				return nil, fmt.Errorf("observation %q: %w",
					item.ID, scoring.NewValidationError("cost_severity", fmt.Sprintf("%d", severity), scoring.ErrInvalidSeverity))
			}

			if item.ID == EngineConditionItem && o.WorkDone == WorkDoneEngineReplaced {
				res.EngineReplaced = true
			}

			res.Items = append(res.Items, scoring.ChecklistResult{
				CategoryID:   c.ID,
				ItemID:       item.ID,
				ItemType:     item.ItemType,
				Status:       status,
				CostSeverity: severity,
			})
		}
	}
	return res, nil
}

// Counts tallies items by status.
type Counts struct {
	OK    int `json:"ok"`
	Minor int `json:"minor"`
	Major int `json:"major"`
	NA    int `json:"na"`
}

// Total returns the number of items counted.
func (c Counts) Total() int { return c.OK + c.Minor + c.Major + c.NA }

// StatusCounts tallies results by status. Unknown statuses are ignored.
func StatusCounts(results []scoring.ChecklistResult) Counts {
	var c Counts
	for _, r := range results {
		switch r.Status {
		case scoring.StatusOK:
			c.OK++
		case scoring.StatusMinor:
			c.Minor++
		case scoring.StatusMajor:
			c.Major++
		case scoring.StatusNA:
			c.NA++
		}
	}
	return c
}
