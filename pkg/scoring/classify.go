package scoring

// Category IDs with special meaning for classification.
const (
	CategoryInterior  = "interior"
	CategoryTyres     = "tyres"
	CategorySteering  = "steering"
	CategoryUnderbody = "underbody"
	CategoryTestDrive = "test-drive"
)

func isSteeringCategory(categoryID string) bool {
	switch categoryID {
	case CategorySteering, CategoryUnderbody, CategoryTestDrive:
		return true
	}
	return false
}

// ScoreGroupOf returns the health-score group for an item.
// Tyres have no score group of their own and fall under exterior.
func ScoreGroupOf(categoryID string, itemType ItemType) ScoreGroup {
	switch {
	case itemType.Structural():
		return GroupStructural
	case itemType == ItemEngine:
		return GroupEngine
	case categoryID == CategoryInterior:
		return GroupElectrical
	case isSteeringCategory(categoryID):
		return GroupSteering
	default:
		return GroupExterior
	}
}

// CostGroupOf returns the repair-cost group for an item.
func CostGroupOf(categoryID string, itemType ItemType) CostGroup {
	switch {
	case itemType.Structural():
		return CostStructural
	case itemType == ItemEngine:
		return CostEngine
	case categoryID == CategoryInterior:
		return CostElectrical
	case categoryID == CategoryTyres:
		return CostTyres
	case isSteeringCategory(categoryID):
		return CostSteering
	default:
		return CostExterior
	}
}
