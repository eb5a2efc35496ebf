// Package scoring implements the Carscope vehicle valuation engine.
// It turns checklist observations, legal flags and a market value into a
// repair-cost range, an exposure percentage, a health score and a
// buy/caution/reject recommendation.
package scoring

// ChecklistStatus is the inspector's verdict on one checklist item.
type ChecklistStatus string

const (
	StatusOK    ChecklistStatus = "OK"
	StatusMinor ChecklistStatus = "MINOR"
	StatusMajor ChecklistStatus = "MAJOR"
	StatusNA    ChecklistStatus = "NA"
)

// Valid reports whether s is one of the known statuses.
func (s ChecklistStatus) Valid() bool {
	switch s {
	case StatusOK, StatusMinor, StatusMajor, StatusNA:
		return true
	}
	return false
}

// Damaged reports whether the status records a defect.
func (s ChecklistStatus) Damaged() bool {
	return s == StatusMinor || s == StatusMajor
}

// CostSeverity is the 0-4 magnitude of an item's repair cost.
// 0 means no cost impact.
type CostSeverity int

const (
	SeverityNone     CostSeverity = 0
	SeverityLow      CostSeverity = 1
	SeverityModerate CostSeverity = 2
	SeverityHigh     CostSeverity = 3
	SeverityCritical CostSeverity = 4
)

// Valid reports whether s is within 0-4.
func (s CostSeverity) Valid() bool {
	return s >= SeverityNone && s <= SeverityCritical
}

// ItemType classifies a checklist item for grouping and cost banding.
type ItemType string

const (
	ItemBodyPanel         ItemType = "BODY_PANEL"
	ItemApron             ItemType = "APRON"
	ItemPillar            ItemType = "PILLAR"
	ItemQuarterPanel      ItemType = "QUARTER_PANEL"
	ItemStructuralSupport ItemType = "STRUCTURAL_SUPPORT"
	ItemGeneral           ItemType = "GENERAL"
	ItemEngine            ItemType = "ENGINE"
)

// ItemTypes lists every known item type.
var ItemTypes = []ItemType{
	ItemBodyPanel, ItemApron, ItemPillar, ItemQuarterPanel,
	ItemStructuralSupport, ItemGeneral, ItemEngine,
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Structural reports whether the item is part of the body structure.
func (t ItemType) Structural() bool {
	switch t {
	case ItemApron, ItemPillar, ItemQuarterPanel, ItemStructuralSupport:
		return true
	}
	return false
}

// HighRisk reports whether damage to this item type is expensive by default.
func (t ItemType) HighRisk() bool {
	return t.Structural() || t == ItemEngine
}

// Recommendation is the final buy guidance.
type Recommendation string

const (
	RecommendYes     Recommendation = "YES"
	RecommendCaution Recommendation = "CAUTION"
	RecommendNo      Recommendation = "NO"
)

// ScoreGroup is a health-score weighting bucket.
type ScoreGroup string

const (
	GroupStructural ScoreGroup = "structural"
	GroupEngine     ScoreGroup = "engine"
	GroupSteering   ScoreGroup = "steering"
	GroupElectrical ScoreGroup = "electrical"
	GroupExterior   ScoreGroup = "exterior"
	GroupLegal      ScoreGroup = "legal"
)

// ScoreGroups lists score groups in display order.
var ScoreGroups = []ScoreGroup{
	GroupStructural, GroupEngine, GroupSteering, GroupElectrical, GroupExterior, GroupLegal,
}

// CostGroup is a repair-cost banding bucket.
type CostGroup string

const (
	CostStructural CostGroup = "structural"
	CostEngine     CostGroup = "engine"
	CostElectrical CostGroup = "electrical"
	CostExterior   CostGroup = "exterior"
	CostTyres      CostGroup = "tyres"
	CostSteering   CostGroup = "steering"
)

// ChecklistResult is one inspected part.
type ChecklistResult struct {
	CategoryID   string          `json:"category_id" yaml:"category_id"`
	ItemID       string          `json:"item_id" yaml:"item_id"`
	ItemType     ItemType        `json:"item_type" yaml:"item_type"`
	Status       ChecklistStatus `json:"status" yaml:"status"`
	CostSeverity CostSeverity    `json:"cost_severity" yaml:"cost_severity"`
}

// LegalFlags are pre-computed legal/registration findings.
type LegalFlags struct {
	RCMismatch              bool `json:"rc_mismatch,omitempty" yaml:"rc_mismatch"`
	HypothecationUnresolved bool `json:"hypothecation_unresolved,omitempty" yaml:"hypothecation_unresolved"`
	FitnessExpired          bool `json:"fitness_expired,omitempty" yaml:"fitness_expired"`
	RoadTaxInvalid          bool `json:"road_tax_invalid,omitempty" yaml:"road_tax_invalid"`
}

// ScoreInput is everything the engine needs for one valuation.
type ScoreInput struct {
	MarketValue    float64           `json:"market_value" yaml:"market_value"`
	Checklist      []ChecklistResult `json:"checklist" yaml:"checklist"`
	Legal          LegalFlags        `json:"legal" yaml:"legal"`
	EngineReplaced bool              `json:"engine_replaced,omitempty" yaml:"engine_replaced"`
}

// CostRange is an inclusive repair-cost estimate in currency units.
type CostRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r CostRange) add(o CostRange) CostRange {
	return CostRange{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

// ScoreOutput is the complete result of a valuation.
// It is derived entirely from ScoreInput and has no lifecycle of its own.
type ScoreOutput struct {
	TotalRepairMin        int                      `json:"total_repair_min"`
	TotalRepairMax        int                      `json:"total_repair_max"`
	ExposurePercent       int                      `json:"exposure_percent"`
	HealthScore           int                      `json:"health_score"`
	Recommendation        Recommendation           `json:"recommendation"`
	RecommendationReasons []string                 `json:"recommendation_reasons"`
	Caps                  []string                 `json:"caps"`
	CategoryTotals        map[ScoreGroup]CostRange `json:"category_totals"`
}
