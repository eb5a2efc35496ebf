package scoring

// Weights holds the calibration constants of the valuation engine.
type Weights struct {
	// Health score points per group. Sums to 100.
	Group map[ScoreGroup]int

	// Per-item penalty inputs
	MinorPenalty      int
	MajorPenalty      int
	MaxPenaltyPerItem int

	// Legal deductions from the legal group weight
	RCMismatchPenalty     int
	HypothecationPenalty  int
	FitnessExpiredPenalty int
	RoadTaxInvalidPenalty int

	// Exposure penalty bands, checked in order with <=.
	ExposureBands           []ExposureBand
	ExposureOverflowPenalty int

	// Severity thresholds used by the caps
	CriticalSeverity       CostSeverity
	HighSeverity           CostSeverity
	StructuralHighMinCount int

	// Hard caps on the health score
	StructuralCriticalCap int
	StructuralHighCap     int
	EngineReplacedCap     int
	EngineCriticalCap     int
	OwnershipCap          int // RC mismatch or hypothecation
	ComplianceCap         int // fitness or road tax

	// Recommendation thresholds
	YesMinScore           int
	NoBelowScore          int
	RejectExposurePercent int
}

// ExposureBand maps exposure percentages up to and including UpTo to a penalty.
type ExposureBand struct {
	UpTo    int
	Penalty int
}

// Defaults returns the calibrated engine weights.
func Defaults() Weights {
	return Weights{
		Group: map[ScoreGroup]int{
			GroupStructural: 35,
			GroupEngine:     25,
			GroupSteering:   15,
			GroupElectrical: 10,
			GroupExterior:   10,
			GroupLegal:      5,
		},

		MinorPenalty:      2,
		MajorPenalty:      5,
		MaxPenaltyPerItem: 7,

		RCMismatchPenalty:     2,
		HypothecationPenalty:  2,
		FitnessExpiredPenalty: 1,
		RoadTaxInvalidPenalty: 1,

		ExposureBands: []ExposureBand{
			{UpTo: 5, Penalty: 0},
			{UpTo: 10, Penalty: 3},
			{UpTo: 20, Penalty: 7},
			{UpTo: 30, Penalty: 12},
			{UpTo: 50, Penalty: 20},
		},
		ExposureOverflowPenalty: 35,

		CriticalSeverity:       SeverityCritical,
		HighSeverity:           SeverityHigh,
		StructuralHighMinCount: 2,

		StructuralCriticalCap: 60,
		StructuralHighCap:     55,
		EngineReplacedCap:     65,
		EngineCriticalCap:     50,
		OwnershipCap:          60,
		ComplianceCap:         55,

		YesMinScore:           80,
		NoBelowScore:          60,
		RejectExposurePercent: 50,
	}
}
