package scoring

import "math"

// Grade is the letter grade shown on reports.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// HealthScoreToGrade maps a 0-100 health score to a letter grade.
func HealthScoreToGrade(score int) Grade {
	switch {
	case score >= 95:
		return GradeAPlus
	case score >= 90:
		return GradeA
	case score >= 85:
		return GradeBPlus
	case score >= 80:
		return GradeB
	case score >= 75:
		return GradeCPlus
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// Color is a named report colour.
type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorAmber  Color = "amber"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Hex returns the colour used by rendered reports.
func (c Color) Hex() string {
	switch c {
	case ColorGreen:
		return "#1f9d55"
	case ColorBlue:
		return "#0ea5e9"
	case ColorAmber:
		return "#f59e0b"
	case ColorOrange:
		return "#f97316"
	default:
		return "#dc2626"
	}
}

// GradeColor returns the colour family of a grade.
func GradeColor(g Grade) Color {
	switch g {
	case GradeAPlus, GradeA:
		return ColorGreen
	case GradeBPlus, GradeB:
		return ColorBlue
	case GradeCPlus, GradeC:
		return ColorAmber
	case GradeD:
		return ColorOrange
	default:
		return ColorRed
	}
}

// DeriveItemScore converts an item's condition into a 0-10 display score.
// The second return value is false for NA items, which are not scored.
func DeriveItemScore(status ChecklistStatus, severity CostSeverity) (int, bool) {
	switch status {
	case StatusNA:
		return 0, false
	case StatusOK:
		if severity == SeverityNone {
			return 10, true
		}
		return 9, true
	case StatusMinor:
		return max(5, 7-int(severity)), true
	default:
		return max(1, 4-int(severity)), true
	}
}

// CategoryAggregateScore is the mean display score of the scorable items,
// rounded to one decimal. A category with nothing scorable scores 10.
func CategoryAggregateScore(items []ChecklistResult) float64 {
	sum, n := 0, 0
	for _, item := range items {
		if s, ok := DeriveItemScore(item.Status, item.CostSeverity); ok {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 10
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}
