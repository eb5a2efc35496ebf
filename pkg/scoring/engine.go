package scoring

import (
	"math"
)

// Cap and override reasons reported in ScoreOutput.
const (
	ReasonStructuralCritical = "Critical structural item present"
	ReasonStructuralHigh     = "Multiple high structural items"
	ReasonEngineReplaced     = "Engine replaced"
	ReasonEngineCritical     = "Critical engine cost"
	ReasonOwnership          = "RC mismatch or hypothecation unresolved"
	ReasonCompliance         = "Fitness expired or road tax invalid"
	ReasonExposure           = "Repair exposure > 50%"
)

// Engine computes valuations with a fixed set of weights.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	w Weights
}

// NewEngine creates an engine with the default weights.
func NewEngine() *Engine {
	return &Engine{w: Defaults()}
}

var defaultEngine = NewEngine()

// ComputeScore evaluates in with the default engine.
func ComputeScore(in ScoreInput) (*ScoreOutput, error) {
	return defaultEngine.Score(in)
}

// tally accumulates per-item facts during bucketing.
type tally struct {
	groups              map[ScoreGroup][]ChecklistResult
	totals              map[ScoreGroup]CostRange
	total               CostRange
	structuralCritical  bool
	structuralHighCount int
	engineCritical      bool
}

// Score validates in and produces a complete ScoreOutput.
// It either returns the full result or an error; never a partial score.
func (e *Engine) Score(in ScoreInput) (*ScoreOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t := e.bucket(in.Checklist)
	exposure := exposurePercent(t.total.Max, in.MarketValue)

	score := 0
	for _, group := range ScoreGroups {
		if group == GroupLegal {
			continue
		}
		score += e.groupScore(group, t.groups[group])
	}
	score += e.legalScore(in.Legal)
	score = clamp(score-e.exposurePenalty(exposure), 0, 100)

	caps, ceiling := e.caps(t, in)
	if len(caps) > 0 && ceiling < score {
		score = ceiling
	}

	recommendation := RecommendCaution
	if score >= e.w.YesMinScore && len(caps) == 0 {
		recommendation = RecommendYes
	} else if score < e.w.NoBelowScore {
		recommendation = RecommendNo
	}

	// Hard overrides outrank the score-based recommendation.
	reasons := append([]string{}, caps...)
	if exposure > e.w.RejectExposurePercent {
		recommendation = RecommendNo
		reasons = append(reasons, ReasonExposure)
	}
	if t.structuralCritical {
		recommendation = RecommendNo
	}

	return &ScoreOutput{
		TotalRepairMin:        t.total.Min,
		TotalRepairMax:        t.total.Max,
		ExposurePercent:       exposure,
		HealthScore:           score,
		Recommendation:        recommendation,
		RecommendationReasons: reasons,
		Caps:                  caps,
		CategoryTotals:        t.totals,
	}, nil
}

func (e *Engine) bucket(items []ChecklistResult) tally {
	t := tally{
		groups: make(map[ScoreGroup][]ChecklistResult),
		totals: make(map[ScoreGroup]CostRange),
	}
	for _, item := range items {
		group := ScoreGroupOf(item.CategoryID, item.ItemType)
		band := CostBand(CostGroupOf(item.CategoryID, item.ItemType), item.CostSeverity)

		t.groups[group] = append(t.groups[group], item)
		t.total = t.total.add(band)
		// Keyed by score group: tyre costs land in exterior.
		t.totals[group] = t.totals[group].add(band)

		switch group {
		case GroupStructural:
			if item.CostSeverity >= e.w.CriticalSeverity {
				t.structuralCritical = true
			}
			if item.CostSeverity >= e.w.HighSeverity {
				t.structuralHighCount++
			}
		case GroupEngine:
			if item.CostSeverity >= e.w.CriticalSeverity {
				t.engineCritical = true
			}
		}
	}
	return t
}

// groupScore returns the points a group earns. A group with no items earns 0.
func (e *Engine) groupScore(group ScoreGroup, items []ChecklistResult) int {
	if len(items) == 0 {
		return 0
	}
	maxPenalty := len(items) * e.w.MaxPenaltyPerItem
	penalty := 0
	for _, item := range items {
		penalty += e.statusPenalty(item.Status) + int(item.CostSeverity)
	}
	normalized := math.Min(1, float64(penalty)/float64(maxPenalty))
	return int(math.Round(float64(e.w.Group[group]) * (1 - normalized)))
}

func (e *Engine) statusPenalty(status ChecklistStatus) int {
	switch status {
	case StatusMinor:
		return e.w.MinorPenalty
	case StatusMajor:
		return e.w.MajorPenalty
	default:
		return 0
	}
}

func (e *Engine) legalScore(flags LegalFlags) int {
	penalty := 0
	if flags.RCMismatch {
		penalty += e.w.RCMismatchPenalty
	}
	if flags.HypothecationUnresolved {
		penalty += e.w.HypothecationPenalty
	}
	if flags.FitnessExpired {
		penalty += e.w.FitnessExpiredPenalty
	}
	if flags.RoadTaxInvalid {
		penalty += e.w.RoadTaxInvalidPenalty
	}
	return max(0, e.w.Group[GroupLegal]-penalty)
}

func (e *Engine) exposurePenalty(exposure int) int {
	for _, band := range e.w.ExposureBands {
		if exposure <= band.UpTo {
			return band.Penalty
		}
	}
	return e.w.ExposureOverflowPenalty
}

// caps returns the triggered cap reasons in evaluation order and the lowest ceiling.
func (e *Engine) caps(t tally, in ScoreInput) ([]string, int) {
	caps := []string{}
	ceiling := 100
	apply := func(triggered bool, reason string, limit int) {
		if !triggered {
			return
		}
		caps = append(caps, reason)
		ceiling = min(ceiling, limit)
	}

	apply(t.structuralCritical, ReasonStructuralCritical, e.w.StructuralCriticalCap)
	apply(t.structuralHighCount >= e.w.StructuralHighMinCount, ReasonStructuralHigh, e.w.StructuralHighCap)
	apply(in.EngineReplaced, ReasonEngineReplaced, e.w.EngineReplacedCap)
	apply(t.engineCritical, ReasonEngineCritical, e.w.EngineCriticalCap)
	apply(in.Legal.RCMismatch || in.Legal.HypothecationUnresolved, ReasonOwnership, e.w.OwnershipCap)
	apply(in.Legal.FitnessExpired || in.Legal.RoadTaxInvalid, ReasonCompliance, e.w.ComplianceCap)

	return caps, ceiling
}

// exposurePercent is the rounded share of market value the worst-case repair
// would consume. Zero when no market value is known.
func exposurePercent(repairMax int, marketValue float64) int {
	if marketValue <= 0 {
		return 0
	}
	return int(math.Round(float64(repairMax) / marketValue * 100))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
