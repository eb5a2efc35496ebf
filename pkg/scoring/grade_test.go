package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carscope/carscope/pkg/scoring"
)

func TestSuggestedSeverity(t *testing.T) {
	tests := []struct {
		status   scoring.ChecklistStatus
		itemType scoring.ItemType
		want     scoring.CostSeverity
	}{
		{scoring.StatusOK, scoring.ItemEngine, 0},
		{scoring.StatusNA, scoring.ItemPillar, 0},
		{scoring.StatusMinor, scoring.ItemBodyPanel, 1},
		{scoring.StatusMinor, scoring.ItemGeneral, 1},
		{scoring.StatusMinor, scoring.ItemApron, 2},
		{scoring.StatusMinor, scoring.ItemEngine, 2},
		{scoring.StatusMajor, scoring.ItemGeneral, 3},
		{scoring.StatusMajor, scoring.ItemQuarterPanel, 4},
		{scoring.StatusMajor, scoring.ItemStructuralSupport, 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, scoring.SuggestedSeverity(tc.status, tc.itemType), "%s/%s", tc.status, tc.itemType)
	}
}

func TestChecklistStatusDamaged(t *testing.T) {
	assert.True(t, scoring.StatusMinor.Damaged())
	assert.True(t, scoring.StatusMajor.Damaged())
	assert.False(t, scoring.StatusOK.Damaged())
	assert.False(t, scoring.StatusNA.Damaged())
	assert.False(t, scoring.ChecklistStatus("BROKEN").Damaged())

	assert.Equal(t, scoring.SeverityNone, scoring.SuggestedSeverity("BROKEN", scoring.ItemEngine))
}

func TestSuggestedSeverityNeverZeroForDamage(t *testing.T) {
	for _, it := range scoring.ItemTypes {
		for _, status := range []scoring.ChecklistStatus{scoring.StatusMinor, scoring.StatusMajor} {
			sev := scoring.SuggestedSeverity(status, it)
			assert.Greater(t, int(sev), 0, "%s/%s", status, it)
			assert.True(t, sev.Valid())
		}
	}
}

func TestHealthScoreToGrade(t *testing.T) {
	tests := []struct {
		score int
		want  scoring.Grade
	}{
		{100, scoring.GradeAPlus},
		{95, scoring.GradeAPlus},
		{94, scoring.GradeA},
		{90, scoring.GradeA},
		{89, scoring.GradeBPlus},
		{85, scoring.GradeBPlus},
		{80, scoring.GradeB},
		{79, scoring.GradeCPlus},
		{75, scoring.GradeCPlus},
		{70, scoring.GradeC},
		{69, scoring.GradeD},
		{60, scoring.GradeD},
		{59, scoring.GradeF},
		{0, scoring.GradeF},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, scoring.HealthScoreToGrade(tc.score), "score %d", tc.score)
	}
}

func TestGradeColor(t *testing.T) {
	assert.Equal(t, scoring.ColorGreen, scoring.GradeColor(scoring.GradeAPlus))
	assert.Equal(t, scoring.ColorGreen, scoring.GradeColor(scoring.GradeA))
	assert.Equal(t, scoring.ColorBlue, scoring.GradeColor(scoring.GradeBPlus))
	assert.Equal(t, scoring.ColorBlue, scoring.GradeColor(scoring.GradeB))
	assert.Equal(t, scoring.ColorAmber, scoring.GradeColor(scoring.GradeCPlus))
	assert.Equal(t, scoring.ColorAmber, scoring.GradeColor(scoring.GradeC))
	assert.Equal(t, scoring.ColorOrange, scoring.GradeColor(scoring.GradeD))
	assert.Equal(t, scoring.ColorRed, scoring.GradeColor(scoring.GradeF))
	assert.Equal(t, "#dc2626", scoring.ColorRed.Hex())
}

func TestDeriveItemScore(t *testing.T) {
	tests := []struct {
		status scoring.ChecklistStatus
		sev    scoring.CostSeverity
		want   int
		ok     bool
	}{
		{scoring.StatusNA, 0, 0, false},
		{scoring.StatusNA, 3, 0, false},
		{scoring.StatusOK, 0, 10, true},
		{scoring.StatusOK, 1, 9, true},
		{scoring.StatusMinor, 1, 6, true},
		{scoring.StatusMinor, 2, 5, true},
		{scoring.StatusMinor, 4, 5, true},
		{scoring.StatusMajor, 1, 3, true},
		{scoring.StatusMajor, 3, 1, true},
		{scoring.StatusMajor, 4, 1, true},
	}
	for _, tc := range tests {
		got, ok := scoring.DeriveItemScore(tc.status, tc.sev)
		assert.Equal(t, tc.ok, ok, "%s/%d", tc.status, tc.sev)
		assert.Equal(t, tc.want, got, "%s/%d", tc.status, tc.sev)
	}
}

func TestCategoryAggregateScore(t *testing.T) {
	r := func(status scoring.ChecklistStatus, sev scoring.CostSeverity) scoring.ChecklistResult {
		return scoring.ChecklistResult{Status: status, CostSeverity: sev}
	}

	assert.Equal(t, 10.0, scoring.CategoryAggregateScore(nil))
	assert.Equal(t, 10.0, scoring.CategoryAggregateScore([]scoring.ChecklistResult{r(scoring.StatusNA, 0)}))
	assert.Equal(t, 7.5, scoring.CategoryAggregateScore([]scoring.ChecklistResult{
		r(scoring.StatusOK, 0), r(scoring.StatusMinor, 2), r(scoring.StatusNA, 0),
	}))
	assert.Equal(t, 9.3, scoring.CategoryAggregateScore([]scoring.ChecklistResult{
		r(scoring.StatusOK, 0), r(scoring.StatusOK, 1), r(scoring.StatusOK, 1),
	}))
	assert.Equal(t, 6.0, scoring.CategoryAggregateScore([]scoring.ChecklistResult{
		r(scoring.StatusOK, 1), r(scoring.StatusMinor, 1), r(scoring.StatusMajor, 1),
	}))
}
