package scoring

// SuggestedSeverity returns the cost severity the inspection form pre-fills
// when an item's status changes. Damaged statuses never yield 0.
func SuggestedSeverity(status ChecklistStatus, itemType ItemType) CostSeverity {
	if !status.Damaged() {
		return SeverityNone
	}
	if status == StatusMajor {
		if itemType.HighRisk() {
			return SeverityCritical
		}
		return SeverityHigh
	}
	if itemType.HighRisk() {
		return SeverityModerate
	}
	return SeverityLow
}
