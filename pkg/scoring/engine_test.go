package scoring_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carscope/carscope/pkg/scoring"
)

func item(category, id string, itemType scoring.ItemType, status scoring.ChecklistStatus, sev scoring.CostSeverity) scoring.ChecklistResult {
	return scoring.ChecklistResult{
		CategoryID:   category,
		ItemID:       id,
		ItemType:     itemType,
		Status:       status,
		CostSeverity: sev,
	}
}

// cleanChecklist has one OK item in every non-legal score group.
func cleanChecklist(extra ...scoring.ChecklistResult) []scoring.ChecklistResult {
	items := []scoring.ChecklistResult{
		item("exterior", "lhs-apron", scoring.ItemApron, scoring.StatusOK, 0),
		item("engine", "engine-condition", scoring.ItemEngine, scoring.StatusOK, 0),
		item("steering", "brakes", scoring.ItemGeneral, scoring.StatusOK, 0),
		item("interior", "power-windows", scoring.ItemGeneral, scoring.StatusOK, 0),
		item("exterior", "front-bumper", scoring.ItemBodyPanel, scoring.StatusOK, 0),
	}
	return append(items, extra...)
}

func mustScore(t *testing.T, in scoring.ScoreInput) *scoring.ScoreOutput {
	t.Helper()
	out, err := scoring.ComputeScore(in)
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func TestComputeScoreEmptyChecklist(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{Checklist: []scoring.ChecklistResult{}})

	assert.Equal(t, 5, out.HealthScore, "only the legal group contributes")
	assert.Equal(t, 0, out.ExposurePercent)
	assert.Equal(t, 0, out.TotalRepairMin)
	assert.Equal(t, 0, out.TotalRepairMax)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation)
	assert.Empty(t, out.RecommendationReasons)
	assert.Empty(t, out.Caps)
	assert.Empty(t, out.CategoryTotals)
}

func TestComputeScoreCleanVehicle(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{MarketValue: 500000, Checklist: cleanChecklist()})

	assert.Equal(t, 100, out.HealthScore)
	assert.Equal(t, scoring.RecommendYes, out.Recommendation)
	assert.Equal(t, 0, out.ExposurePercent)
	assert.NotNil(t, out.Caps)
	assert.NotNil(t, out.RecommendationReasons)
}

func TestComputeScoreSingleCriticalStructuralItem(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		MarketValue: 1_000_000,
		Checklist: []scoring.ChecklistResult{
			item("exterior", "firewall", scoring.ItemStructuralSupport, scoring.StatusMajor, 4),
		},
	})

	assert.Equal(t, 60000, out.TotalRepairMin)
	assert.Equal(t, 150000, out.TotalRepairMax)
	assert.Equal(t, 15, out.ExposurePercent)
	assert.Equal(t, 0, out.HealthScore)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation)
	assert.Equal(t, []string{scoring.ReasonStructuralCritical}, out.Caps)
	assert.Equal(t, []string{scoring.ReasonStructuralCritical}, out.RecommendationReasons)
}

func TestComputeScoreStructuralCriticalForcesNo(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		MarketValue: 1_000_000,
		Checklist: cleanChecklist(
			item("exterior", "a-pillar-lhs", scoring.ItemPillar, scoring.StatusOK, 0),
			item("exterior", "firewall", scoring.ItemStructuralSupport, scoring.StatusMajor, 4),
		),
	})

	// 20 + 25 + 15 + 10 + 10 + 5 = 85, minus 7 for 15% exposure, capped at 60.
	assert.Equal(t, 60, out.HealthScore)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation, "critical structure overrides the CAUTION band")
	assert.Equal(t, []string{scoring.ReasonStructuralCritical}, out.RecommendationReasons)
	assert.Equal(t, scoring.CostRange{Min: 60000, Max: 150000}, out.CategoryTotals[scoring.GroupStructural])
	assert.Equal(t, scoring.CostRange{}, out.CategoryTotals[scoring.GroupEngine])
}

func TestComputeScoreEngineReplaced(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{Checklist: cleanChecklist(), EngineReplaced: true})

	assert.Equal(t, 65, out.HealthScore)
	assert.Equal(t, scoring.RecommendCaution, out.Recommendation)
	assert.Equal(t, []string{scoring.ReasonEngineReplaced}, out.RecommendationReasons)
}

func TestComputeScoreMultipleHighStructural(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		MarketValue: 2_400_000,
		Checklist: cleanChecklist(
			item("exterior", "a-pillar-lhs", scoring.ItemPillar, scoring.StatusMajor, 3),
			item("exterior", "lhs-quarter", scoring.ItemQuarterPanel, scoring.StatusMajor, 3),
		),
	})

	assert.Equal(t, 50000, out.TotalRepairMin)
	assert.Equal(t, 120000, out.TotalRepairMax)
	assert.Equal(t, 5, out.ExposurePercent)
	assert.Equal(t, 55, out.HealthScore)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation)
	assert.Equal(t, []string{scoring.ReasonStructuralHigh}, out.Caps)
}

func TestComputeScoreEngineCritical(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		MarketValue: 5_000_000,
		Checklist: cleanChecklist(
			item("engine", "turbo", scoring.ItemEngine, scoring.StatusMajor, 4),
		),
	})

	assert.Equal(t, 50, out.HealthScore)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation)
	assert.Equal(t, []string{scoring.ReasonEngineCritical}, out.Caps)
	assert.Equal(t, scoring.CostRange{Min: 80000, Max: 250000}, out.CategoryTotals[scoring.GroupEngine])
}

func TestComputeScoreLegalFlags(t *testing.T) {
	tests := []struct {
		name      string
		legal     scoring.LegalFlags
		wantScore int
		wantRec   scoring.Recommendation
		wantCaps  []string
	}{
		{
			name:      "rc mismatch",
			legal:     scoring.LegalFlags{RCMismatch: true},
			wantScore: 60,
			wantRec:   scoring.RecommendCaution,
			wantCaps:  []string{scoring.ReasonOwnership},
		},
		{
			name:      "hypothecation unresolved",
			legal:     scoring.LegalFlags{HypothecationUnresolved: true},
			wantScore: 60,
			wantRec:   scoring.RecommendCaution,
			wantCaps:  []string{scoring.ReasonOwnership},
		},
		{
			name:      "fitness and road tax",
			legal:     scoring.LegalFlags{FitnessExpired: true, RoadTaxInvalid: true},
			wantScore: 55,
			wantRec:   scoring.RecommendNo,
			wantCaps:  []string{scoring.ReasonCompliance},
		},
		{
			name: "every flag",
			legal: scoring.LegalFlags{
				RCMismatch: true, HypothecationUnresolved: true,
				FitnessExpired: true, RoadTaxInvalid: true,
			},
			wantScore: 55,
			wantRec:   scoring.RecommendNo,
			wantCaps:  []string{scoring.ReasonOwnership, scoring.ReasonCompliance},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := mustScore(t, scoring.ScoreInput{Checklist: cleanChecklist(), Legal: tc.legal})
			assert.Equal(t, tc.wantScore, out.HealthScore)
			assert.Equal(t, tc.wantRec, out.Recommendation)
			assert.Equal(t, tc.wantCaps, out.Caps)
		})
	}
}

func TestComputeScoreLegalContribution(t *testing.T) {
	// With an empty checklist the score is the legal points alone, below every cap.
	tests := []struct {
		legal scoring.LegalFlags
		want  int
	}{
		{legal: scoring.LegalFlags{}, want: 5},
		{legal: scoring.LegalFlags{FitnessExpired: true}, want: 4},
		{legal: scoring.LegalFlags{RCMismatch: true}, want: 3},
		{legal: scoring.LegalFlags{RCMismatch: true, HypothecationUnresolved: true}, want: 1},
		{legal: scoring.LegalFlags{
			RCMismatch: true, HypothecationUnresolved: true,
			FitnessExpired: true, RoadTaxInvalid: true,
		}, want: 0},
	}
	for _, tc := range tests {
		out := mustScore(t, scoring.ScoreInput{Legal: tc.legal})
		assert.Equal(t, tc.want, out.HealthScore, "flags %+v", tc.legal)
	}
}

func TestComputeScoreCapOrder(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		MarketValue: 100_000_000,
		Checklist: cleanChecklist(
			item("exterior", "firewall", scoring.ItemStructuralSupport, scoring.StatusMajor, 4),
			item("underbody", "floor-pan", scoring.ItemStructuralSupport, scoring.StatusMajor, 4),
			item("engine", "clutch", scoring.ItemEngine, scoring.StatusMajor, 4),
		),
		EngineReplaced: true,
		Legal:          scoring.LegalFlags{RCMismatch: true, RoadTaxInvalid: true},
	})

	assert.Equal(t, []string{
		scoring.ReasonStructuralCritical,
		scoring.ReasonStructuralHigh,
		scoring.ReasonEngineReplaced,
		scoring.ReasonEngineCritical,
		scoring.ReasonOwnership,
		scoring.ReasonCompliance,
	}, out.Caps)
	assert.LessOrEqual(t, out.HealthScore, 50)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation)
}

func TestComputeScoreExposureBoundaries(t *testing.T) {
	tests := []struct {
		marketValue  float64
		wantExposure int
		wantScore    int
		wantRec      scoring.Recommendation
	}{
		{marketValue: 160000, wantExposure: 5, wantScore: 97, wantRec: scoring.RecommendYes},
		{marketValue: 80000, wantExposure: 10, wantScore: 94, wantRec: scoring.RecommendYes},
		{marketValue: 72000, wantExposure: 11, wantScore: 90, wantRec: scoring.RecommendYes},
		{marketValue: 40000, wantExposure: 20, wantScore: 90, wantRec: scoring.RecommendYes},
		{marketValue: 26667, wantExposure: 30, wantScore: 85, wantRec: scoring.RecommendYes},
		{marketValue: 16000, wantExposure: 50, wantScore: 77, wantRec: scoring.RecommendCaution},
		{marketValue: 15686, wantExposure: 51, wantScore: 62, wantRec: scoring.RecommendNo},
	}

	for _, tc := range tests {
		out := mustScore(t, scoring.ScoreInput{
			MarketValue: tc.marketValue,
			Checklist: cleanChecklist(
				item("exterior", "bonnet", scoring.ItemBodyPanel, scoring.StatusMinor, 2),
			),
		})
		assert.Equal(t, 8000, out.TotalRepairMax)
		assert.Equal(t, tc.wantExposure, out.ExposurePercent, "market value %v", tc.marketValue)
		assert.Equal(t, tc.wantScore, out.HealthScore, "market value %v", tc.marketValue)
		assert.Equal(t, tc.wantRec, out.Recommendation, "market value %v", tc.marketValue)
	}
}

func TestComputeScoreExposureOverride(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		MarketValue: 300000,
		Checklist: cleanChecklist(
			item("exterior", "bonnet", scoring.ItemBodyPanel, scoring.StatusMajor, 4),
		),
	})

	assert.Equal(t, 67, out.ExposurePercent)
	assert.Equal(t, 59, out.HealthScore)
	assert.Equal(t, scoring.RecommendNo, out.Recommendation)
	assert.Empty(t, out.Caps)
	assert.Equal(t, []string{scoring.ReasonExposure}, out.RecommendationReasons)
}

func TestComputeScoreTyreCostsFoldIntoExterior(t *testing.T) {
	out := mustScore(t, scoring.ScoreInput{
		Checklist: cleanChecklist(
			item("tyres", "tyre-lf", scoring.ItemGeneral, scoring.StatusMinor, 1),
		),
	})

	assert.Equal(t, scoring.CostRange{Min: 6000, Max: 15000}, out.CategoryTotals[scoring.GroupExterior])
	_, hasTyres := out.CategoryTotals[scoring.ScoreGroup("tyres")]
	assert.False(t, hasTyres)
	assert.Equal(t, 98, out.HealthScore)
	assert.Equal(t, 0, out.ExposurePercent, "no market value means no exposure")
}

func TestComputeScoreRepairRangeOrdered(t *testing.T) {
	var checklist []scoring.ChecklistResult
	for _, cat := range []string{"exterior", "tyres", "interior", "engine", "steering", "underbody", "test-drive"} {
		for _, it := range scoring.ItemTypes {
			for sev := scoring.SeverityNone; sev <= scoring.SeverityCritical; sev++ {
				checklist = append(checklist, item(cat, string(it), it, scoring.StatusMajor, sev))
			}
		}
	}
	out := mustScore(t, scoring.ScoreInput{MarketValue: 1, Checklist: checklist})

	assert.LessOrEqual(t, out.TotalRepairMin, out.TotalRepairMax)
	for group, r := range out.CategoryTotals {
		assert.LessOrEqual(t, r.Min, r.Max, "group %s", group)
	}
	assert.GreaterOrEqual(t, out.HealthScore, 0)
	assert.LessOrEqual(t, out.HealthScore, 100)
}

func TestComputeScoreIdempotent(t *testing.T) {
	in := scoring.ScoreInput{
		MarketValue: 450000,
		Checklist: cleanChecklist(
			item("tyres", "tyre-rr", scoring.ItemGeneral, scoring.StatusMinor, 1),
			item("engine", "clutch", scoring.ItemEngine, scoring.StatusMajor, 3),
		),
		Legal: scoring.LegalFlags{FitnessExpired: true},
	}

	first, err := json.Marshal(mustScore(t, in))
	require.NoError(t, err)
	second, err := json.Marshal(mustScore(t, in))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestComputeScoreDoesNotMutateInput(t *testing.T) {
	checklist := cleanChecklist(item("exterior", "bonnet", scoring.ItemBodyPanel, scoring.StatusMinor, 2))
	snapshot := append([]scoring.ChecklistResult(nil), checklist...)

	mustScore(t, scoring.ScoreInput{MarketValue: 100000, Checklist: checklist})
	assert.Equal(t, snapshot, checklist)
}

func TestComputeScoreConcurrent(t *testing.T) {
	in := scoring.ScoreInput{MarketValue: 1_000_000, Checklist: cleanChecklist()}
	want := mustScore(t, in)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := scoring.ComputeScore(in)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestComputeScoreRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		in      scoring.ScoreInput
		wantErr error
	}{
		{
			name:    "negative market value",
			in:      scoring.ScoreInput{MarketValue: -1},
			wantErr: scoring.ErrNegativeMarketValue,
		},
		{
			name: "severity above range",
			in: scoring.ScoreInput{Checklist: []scoring.ChecklistResult{
				item("exterior", "bonnet", scoring.ItemBodyPanel, scoring.StatusMajor, 5),
			}},
			wantErr: scoring.ErrInvalidSeverity,
		},
		{
			name: "negative severity",
			in: scoring.ScoreInput{Checklist: []scoring.ChecklistResult{
				item("exterior", "bonnet", scoring.ItemBodyPanel, scoring.StatusMinor, -1),
			}},
			wantErr: scoring.ErrInvalidSeverity,
		},
		{
			name: "unknown item type",
			in: scoring.ScoreInput{Checklist: []scoring.ChecklistResult{
				item("exterior", "spoiler", scoring.ItemType("SPOILER"), scoring.StatusOK, 0),
			}},
			wantErr: scoring.ErrUnknownItemType,
		},
		{
			name: "unknown status",
			in: scoring.ScoreInput{Checklist: []scoring.ChecklistResult{
				item("exterior", "bonnet", scoring.ItemBodyPanel, scoring.ChecklistStatus("BROKEN"), 0),
			}},
			wantErr: scoring.ErrUnknownStatus,
		},
		{
			name: "missing category",
			in: scoring.ScoreInput{Checklist: []scoring.ChecklistResult{
				item("", "bonnet", scoring.ItemBodyPanel, scoring.StatusOK, 0),
			}},
			wantErr: scoring.ErrEmptyCategory,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := scoring.ComputeScore(tc.in)
			require.Error(t, err)
			assert.Nil(t, out, "no partial results")
			assert.ErrorIs(t, err, tc.wantErr)

			var verr *scoring.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}
