package surface_test

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/scoring"
	"github.com/carscope/carscope/pkg/surface"
)

func sampleReport() *surface.Report {
	out := &scoring.ScoreOutput{
		TotalRepairMin:  68000,
		TotalRepairMax:  158000,
		ExposurePercent: 32,
		HealthScore:     60,
		Recommendation:  scoring.RecommendNo,
		RecommendationReasons: []string{
			scoring.ReasonStructuralCritical,
		},
		Caps: []string{scoring.ReasonStructuralCritical},
		CategoryTotals: map[scoring.ScoreGroup]scoring.CostRange{
			scoring.GroupExterior:   {Min: 8000, Max: 8000},
			scoring.GroupStructural: {Min: 60000, Max: 150000},
		},
	}
	r := surface.NewReport("MH12AB1234 · Maruti Swift VXI", 500000, out)
	r.Counts = &checklist.Counts{OK: 80, Minor: 1, Major: 1}
	return r
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleReport())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()

	// Check header
	if !strings.Contains(output, "Grade D") {
		t.Error("expected Grade D in output")
	}
	if !strings.Contains(output, "Health 60/100") {
		t.Error("expected Health 60/100 in output")
	}
	if !strings.Contains(output, "NO") {
		t.Error("expected recommendation in output")
	}
	if !strings.Contains(output, "MH12AB1234") {
		t.Error("expected vehicle title")
	}

	// Check money
	if !strings.Contains(output, "₹68,000 - ₹1,58,000") {
		t.Errorf("expected repair range, got:\n%s", output)
	}
	if !strings.Contains(output, "₹5,00,000") {
		t.Error("expected market value")
	}
	if !strings.Contains(output, "32%") {
		t.Error("expected exposure")
	}
	if !strings.Contains(output, "80 OK / 1 minor / 1 major / 0 n/a") {
		t.Error("expected checklist counts")
	}

	// Group order follows structural before exterior
	si := strings.Index(output, "structural")
	ei := strings.Index(output, "exterior")
	if si < 0 || ei < 0 || si > ei {
		t.Errorf("expected structural before exterior, got:\n%s", output)
	}

	// Check reasons
	if !strings.Contains(output, "Reasons:") {
		t.Error("expected Reasons section")
	}
	if !strings.Contains(output, scoring.ReasonStructuralCritical) {
		t.Error("expected cap reason")
	}
}

func TestTerminalRenderer_NoReasons(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	out := &scoring.ScoreOutput{
		HealthScore:           100,
		Recommendation:        scoring.RecommendYes,
		RecommendationReasons: []string{},
		Caps:                  []string{},
		CategoryTotals:        map[scoring.ScoreGroup]scoring.CostRange{},
	}

	err := r.Render(&buf, surface.NewReport("", 0, out))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "No caps or overrides") {
		t.Error("expected 'No caps or overrides' message")
	}
	if !strings.Contains(output, "Grade A+") {
		t.Error("expected Grade A+")
	}
	if !strings.Contains(output, "Market value:    "+surface.NoValue) {
		t.Error("expected missing market value placeholder")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleReport())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r := &surface.MarkdownRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	md := buf.String()

	for _, want := range []string{
		"## MH12AB1234 · Maruti Swift VXI",
		":red_circle: NO · Grade D · Health 60/100",
		"| Repair estimate | ₹68,000 - ₹1,58,000 |",
		"| structural | ₹60,000 | ₹1,50,000 |",
		"- **" + scoring.ReasonStructuralCritical + "** (score capped)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}
}

func TestMarkdownRenderer_Summary(t *testing.T) {
	r := &surface.MarkdownRenderer{AsJSON: true}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var s surface.Summary
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if s.Grade != scoring.GradeD || s.Color != "#f97316" {
		t.Errorf("unexpected grade/color %s %s", s.Grade, s.Color)
	}
	if s.Recommendation != scoring.RecommendNo || s.HealthScore != 60 {
		t.Errorf("unexpected verdict %s %d", s.Recommendation, s.HealthScore)
	}
	if !strings.HasPrefix(s.Title, "MH12AB1234") {
		t.Errorf("unexpected title %q", s.Title)
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	var decoded struct {
		Grade  string `json:"grade"`
		Output struct {
			HealthScore    int                       `json:"health_score"`
			CategoryTotals map[string]map[string]int `json:"category_totals"`
		} `json:"output"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if decoded.Grade != "D" || decoded.Output.HealthScore != 60 {
		t.Errorf("unexpected decoded report %+v", decoded)
	}
	if decoded.Output.CategoryTotals["structural"]["max"] != 150000 {
		t.Errorf("unexpected totals %+v", decoded.Output.CategoryTotals)
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{99999, "₹99,999"},
		{150000, "₹1,50,000"},
		{1234567, "₹12,34,567"},
		{123456789, "₹12,34,56,789"},
		{1499.6, "₹1,500"},
		{-25000, "-₹25,000"},
	}
	for _, tc := range tests {
		if got := surface.FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatINRNoValue(t *testing.T) {
	if got := surface.FormatINR(math.NaN()); got != surface.NoValue {
		t.Errorf("FormatINR(NaN) = %q", got)
	}
}
