package checklist

import "github.com/carscope/carscope/pkg/scoring"

// EngineConditionItem is the item whose work-done value records an engine swap.
const EngineConditionItem = "engine-condition"

// WorkDoneEngineReplaced marks a replaced engine on EngineConditionItem.
const WorkDoneEngineReplaced = "Engine replaced"

var panelWorkDone = []string{
	"Original",
	"Minor damage",
	"Dent present",
	"Repaired",
	"Repainted",
	"Replaced",
	"Accident damage",
}

var workDone = map[scoring.ItemType][]string{
	scoring.ItemBodyPanel:    panelWorkDone,
	scoring.ItemApron:        panelWorkDone,
	scoring.ItemPillar:       panelWorkDone,
	scoring.ItemQuarterPanel: panelWorkDone,
	scoring.ItemStructuralSupport: {
		"Structurally sound",
		"Original",
		"Minor rust",
		"Repaired",
		"Repainted",
		"Damage present",
		"Accident damage",
	},
	scoring.ItemGeneral: {
		"Good condition",
		"Needs attention",
		"Not working",
		"Needs replacement",
	},
	scoring.ItemEngine: {
		"Excellent",
		"Good",
		"Minor oil leak",
		"Noise present",
		"Needs service",
		"Engine repaired",
		WorkDoneEngineReplaced,
		"Major issue",
	},
}

// WorkDoneOptions returns the work-done choices offered for an item type.
func WorkDoneOptions(t scoring.ItemType) []string {
	return append([]string(nil), workDone[t]...)
}

// Default returns a fresh copy of the standard passenger-car checklist.
func Default() *Template {
	return defaultTemplate.Clone()
}

var defaultTemplate = &Template{
	Name: "default",
	Categories: []Category{
		{
			ID:    "exterior",
			Title: "Exterior & Body",
			Items: []Item{
				{ID: "front-bumper", Label: "Front Bumper", ItemType: scoring.ItemBodyPanel},
				{ID: "rear-bumper", Label: "Rear Bumper", ItemType: scoring.ItemBodyPanel},
				{ID: "bonnet", Label: "Bonnet/Hood", ItemType: scoring.ItemBodyPanel},
				{ID: "roof", Label: "Roof", ItemType: scoring.ItemBodyPanel},
				{ID: "fender-lhs", Label: "Fender LHS", ItemType: scoring.ItemBodyPanel},
				{ID: "fender-rhs", Label: "Fender RHS", ItemType: scoring.ItemBodyPanel},
				{ID: "door-lf", Label: "Door LHS Front", ItemType: scoring.ItemBodyPanel},
				{ID: "door-lr", Label: "Door LHS Rear", ItemType: scoring.ItemBodyPanel},
				{ID: "door-rf", Label: "Door RHS Front", ItemType: scoring.ItemBodyPanel},
				{ID: "door-rr", Label: "Door RHS Rear", ItemType: scoring.ItemBodyPanel},
				{ID: "boot-door", Label: "Dicky/Boot Door", ItemType: scoring.ItemBodyPanel},
				{ID: "boot-floor", Label: "Boot Floor", ItemType: scoring.ItemBodyPanel},
				{ID: "running-border", Label: "Running Border", ItemType: scoring.ItemBodyPanel},
				{ID: "windshield", Label: "Windshield", ItemType: scoring.ItemBodyPanel},
				{ID: "orvm-lhs", Label: "ORVM LHS", ItemType: scoring.ItemBodyPanel},
				{ID: "orvm-rhs", Label: "ORVM RHS", ItemType: scoring.ItemBodyPanel},
				{ID: "headlight-lhs", Label: "Headlight LHS", ItemType: scoring.ItemBodyPanel},
				{ID: "headlight-rhs", Label: "Headlight RHS", ItemType: scoring.ItemBodyPanel},
				{ID: "taillight-lhs", Label: "Taillight LHS", ItemType: scoring.ItemBodyPanel},
				{ID: "taillight-rhs", Label: "Taillight RHS", ItemType: scoring.ItemBodyPanel},
				{ID: "foglight-lhs", Label: "Fog Light LHS", ItemType: scoring.ItemBodyPanel},
				{ID: "foglight-rhs", Label: "Fog Light RHS", ItemType: scoring.ItemBodyPanel},
				{ID: "lhs-apron", Label: "LHS Apron", ItemType: scoring.ItemApron},
				{ID: "rhs-apron", Label: "RHS Apron", ItemType: scoring.ItemApron},
				{ID: "a-pillar-lhs", Label: "A Pillar LHS", ItemType: scoring.ItemPillar},
				{ID: "a-pillar-rhs", Label: "A Pillar RHS", ItemType: scoring.ItemPillar},
				{ID: "b-pillar-lhs", Label: "B Pillar LHS", ItemType: scoring.ItemPillar},
				{ID: "b-pillar-rhs", Label: "B Pillar RHS", ItemType: scoring.ItemPillar},
				{ID: "c-pillar-lhs", Label: "C Pillar LHS", ItemType: scoring.ItemPillar},
				{ID: "c-pillar-rhs", Label: "C Pillar RHS", ItemType: scoring.ItemPillar},
				{ID: "lhs-quarter", Label: "LHS Quarter Panel", ItemType: scoring.ItemQuarterPanel},
				{ID: "rhs-quarter", Label: "RHS Quarter Panel", ItemType: scoring.ItemQuarterPanel},
				{ID: "firewall", Label: "Firewall", ItemType: scoring.ItemStructuralSupport},
				{ID: "cowl-top", Label: "Cowl Top", ItemType: scoring.ItemStructuralSupport},
				{ID: "upper-cross", Label: "Upper Cross Member (Bonnet Patti)", ItemType: scoring.ItemStructuralSupport},
				{ID: "lower-cross", Label: "Lower Cross Member", ItemType: scoring.ItemStructuralSupport},
				{ID: "headlight-support", Label: "Headlight Support", ItemType: scoring.ItemStructuralSupport},
				{ID: "radiator-support", Label: "Radiator Support", ItemType: scoring.ItemStructuralSupport},
			},
		},
		{
			ID:    "tyres",
			Title: "Tyres & Wheels",
			Items: []Item{
				{ID: "tyre-lf", Label: "LHS Front Tyre", ItemType: scoring.ItemGeneral},
				{ID: "tyre-rf", Label: "RHS Front Tyre", ItemType: scoring.ItemGeneral},
				{ID: "tyre-lr", Label: "LHS Rear Tyre", ItemType: scoring.ItemGeneral},
				{ID: "tyre-rr", Label: "RHS Rear Tyre", ItemType: scoring.ItemGeneral},
				{ID: "tyre-spare", Label: "Spare Tyre", ItemType: scoring.ItemGeneral},
				{ID: "alloy", Label: "Alloy/Wheel Condition", ItemType: scoring.ItemGeneral},
			},
		},
		{
			ID:    "interior",
			Title: "Interior & Electrical",
			Items: []Item{
				{ID: "power-windows", Label: "Power Windows", ItemType: scoring.ItemGeneral},
				{ID: "central-lock", Label: "Central Lock", ItemType: scoring.ItemGeneral},
				{ID: "music", Label: "Music System", ItemType: scoring.ItemGeneral},
				{ID: "reverse-camera", Label: "Reverse Camera", ItemType: scoring.ItemGeneral},
				{ID: "rear-defog", Label: "Rear Defogger", ItemType: scoring.ItemGeneral},
				{ID: "navigation", Label: "Navigation", ItemType: scoring.ItemGeneral},
				{ID: "seat-driver", Label: "Seat (Driver)", ItemType: scoring.ItemGeneral},
				{ID: "seat-2nd", Label: "Seat (2nd Row)", ItemType: scoring.ItemGeneral},
				{ID: "seat-3rd", Label: "Seat (3rd Row)", ItemType: scoring.ItemGeneral},
				{ID: "dashboard", Label: "Dashboard", ItemType: scoring.ItemGeneral},
				{ID: "flooring", Label: "Flooring", ItemType: scoring.ItemGeneral},
			},
		},
		{
			ID:    "engine",
			Title: "Engine & Transmission",
			Items: []Item{
				{ID: "engine-condition", Label: "Engine Condition", ItemType: scoring.ItemEngine},
				{ID: "battery", Label: "Battery", ItemType: scoring.ItemEngine},
				{ID: "engine-oil-level", Label: "Engine Oil Level (Dipstick)", ItemType: scoring.ItemEngine},
				{ID: "engine-oil-condition", Label: "Engine Oil Condition", ItemType: scoring.ItemEngine},
				{ID: "coolant-condition", Label: "Coolant Condition", ItemType: scoring.ItemEngine},
				{ID: "engine-mounting", Label: "Engine Mounting", ItemType: scoring.ItemEngine},
				{ID: "engine-sound", Label: "Engine Sound", ItemType: scoring.ItemEngine, AllowVideo: true},
				{ID: "exhaust-smoke", Label: "Exhaust Smoke", ItemType: scoring.ItemEngine},
				{ID: "clutch", Label: "Clutch", ItemType: scoring.ItemEngine},
				{ID: "gear-shifting", Label: "Gear Shifting", ItemType: scoring.ItemEngine},
				{ID: "turbo", Label: "Turbo Charger", ItemType: scoring.ItemEngine},
				{ID: "fuel-injector", Label: "Fuel Injector", ItemType: scoring.ItemEngine},
			},
		},
		{
			ID:    "steering",
			Title: "Steering / Suspension / Brakes",
			Items: []Item{
				{ID: "steering", Label: "Steering", ItemType: scoring.ItemGeneral},
				{ID: "suspension", Label: "Suspension", ItemType: scoring.ItemGeneral},
				{ID: "brakes", Label: "Brakes", ItemType: scoring.ItemGeneral},
			},
		},
		{
			ID:    "underbody",
			Title: "Underbody / Chassis",
			Items: []Item{
				{ID: "floor-pan", Label: "Floor Pan", ItemType: scoring.ItemStructuralSupport},
				{ID: "rust", Label: "Rust/Corrosion", ItemType: scoring.ItemStructuralSupport},
				{ID: "exhaust-system", Label: "Exhaust System", ItemType: scoring.ItemGeneral},
				{ID: "accident-underbody", Label: "Accident Damage (Underbody)", ItemType: scoring.ItemStructuralSupport},
				{ID: "front-cross", Label: "Front Cross Member", ItemType: scoring.ItemStructuralSupport},
				{ID: "rear-cross", Label: "Rear Cross Member", ItemType: scoring.ItemStructuralSupport},
			},
		},
		{
			ID:    "test-drive",
			Title: "Test Drive",
			Items: []Item{
				{ID: "pickup", Label: "Pickup", ItemType: scoring.ItemGeneral},
				{ID: "braking", Label: "Braking Feel", ItemType: scoring.ItemGeneral},
				{ID: "steering-pull", Label: "Steering Pull", ItemType: scoring.ItemGeneral},
				{ID: "vibration", Label: "Vibration/Noise", ItemType: scoring.ItemGeneral},
				{ID: "clutch-slip", Label: "Clutch Slip", ItemType: scoring.ItemGeneral},
				{ID: "gearbox", Label: "Gearbox Behavior", ItemType: scoring.ItemGeneral},
			},
		},
	},
}
