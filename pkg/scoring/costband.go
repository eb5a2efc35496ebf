package scoring

// costBands holds the repair-cost range per group, indexed by severity.
// Index 0 is always the zero range.
var costBands = map[CostGroup][5]CostRange{
	CostStructural: {
		{},
		{Min: 10000, Max: 25000},
		{Min: 10000, Max: 25000},
		{Min: 25000, Max: 60000},
		{Min: 60000, Max: 150000},
	},
	CostEngine: {
		{},
		{Min: 8000, Max: 25000},
		{Min: 8000, Max: 25000},
		{Min: 25000, Max: 80000},
		{Min: 80000, Max: 250000},
	},
	CostTyres: {
		{},
		{Min: 6000, Max: 15000},
		{Min: 6000, Max: 15000},
		{Min: 15000, Max: 40000},
		{Min: 15000, Max: 40000},
	},
	CostElectrical: {
		{},
		{Min: 1000, Max: 5000},
		{Min: 5000, Max: 15000},
		{Min: 15000, Max: 35000},
		{Min: 35000, Max: 80000},
	},
	CostExterior: {
		{},
		{Min: 1000, Max: 3000},
		{Min: 3000, Max: 8000},
		{Min: 8000, Max: 20000},
		{Min: 20000, Max: 200000},
	},
	CostSteering: {
		{},
		{Min: 3000, Max: 8000},
		{Min: 8000, Max: 15000},
		{Min: 15000, Max: 35000},
		{Min: 35000, Max: 80000},
	},
}

// CostBand returns the repair-cost range for a group at a severity.
// Severity 0, unknown groups and out-of-range severities yield the zero range.
func CostBand(group CostGroup, severity CostSeverity) CostRange {
	if !severity.Valid() {
		return CostRange{}
	}
	bands, ok := costBands[group]
	if !ok {
		return CostRange{}
	}
	return bands[severity]
}
