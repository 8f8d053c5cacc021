// Package carbon holds the deterministic part of the tracker: emission
// factor tables, the estimator, the aggregator and the rule-based
// recommendation selector. Nothing in this package performs I/O.
package carbon

import (
	"slices"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// SubType names an activity variant inside a category, e.g. "car" for
// transportation or "plastic" for waste.
type SubType string

const (
	// transportation, kg CO2e per km
	SubTypeCar    SubType = "car"
	SubTypeBus    SubType = "bus"
	SubTypeTrain  SubType = "train"
	SubTypeFlight SubType = "flight"
	SubTypeBike   SubType = "bike"
	SubTypeCycle  SubType = "cycle"
	SubTypeWalk   SubType = "walk"

	// energy, kg CO2e per kWh
	SubTypeElectricity SubType = "electricity"
	SubTypeNaturalGas  SubType = "natural_gas"
	SubTypeHeatingOil  SubType = "heating_oil"
	SubTypePropane     SubType = "propane"

	// food, kg CO2e per kg
	SubTypeMeat      SubType = "meat"
	SubTypeDairy     SubType = "dairy"
	SubTypeVegetable SubType = "vegetable"
	SubTypeFruit     SubType = "fruit"
	SubTypeGrain     SubType = "grain"
	SubTypeProcessed SubType = "processed"

	// shopping, kg CO2e per kg
	SubTypeElectronics SubType = "electronics"
	SubTypeClothing    SubType = "clothing"
	SubTypeFurniture   SubType = "furniture"
	SubTypeBooks       SubType = "books"
	SubTypeGroceries   SubType = "groceries"

	// waste, kg CO2e per kg
	SubTypePlastic    SubType = "plastic"
	SubTypePaper      SubType = "paper"
	SubTypeOrganic    SubType = "organic"
	SubTypeElectronic SubType = "electronic"
	SubTypeHazardous  SubType = "hazardous"

	// shared by shopping and waste
	SubTypeOther SubType = "other"
)

// FactorTable describes how one category's details are read and priced.
type FactorTable struct {
	// SubTypeKey is the details key holding the sub-type label.
	SubTypeKey string
	// QuantityKey is the details key holding the quantity.
	QuantityKey string
	// Unit is the unit of the quantity.
	Unit    string
	Factors map[SubType]float64
}

var factorTables = map[domain.Category]FactorTable{
	domain.CategoryTransportation: {
		SubTypeKey:  "type",
		QuantityKey: "distance",
		Unit:        "km",
		Factors: map[SubType]float64{
			SubTypeCar:    0.170,
			SubTypeBus:    0.100,
			SubTypeTrain:  0.035,
			SubTypeFlight: 0.246,
			SubTypeBike:   0.021,
			SubTypeCycle:  0,
			SubTypeWalk:   0,
		},
	},
	domain.CategoryEnergy: {
		SubTypeKey:  "type",
		QuantityKey: "kwh",
		Unit:        "kWh",
		Factors: map[SubType]float64{
			SubTypeElectricity: 0.394,
			SubTypeNaturalGas:  0.202,
			SubTypeHeatingOil:  0.268,
			SubTypePropane:     0.227,
		},
	},
	domain.CategoryFood: {
		SubTypeKey:  "type",
		QuantityKey: "quantity",
		Unit:        "kg",
		Factors: map[SubType]float64{
			SubTypeMeat:      27.0,
			SubTypeDairy:     3.2,
			SubTypeVegetable: 0.5,
			SubTypeFruit:     0.7,
			SubTypeGrain:     1.4,
			SubTypeProcessed: 3.1,
		},
	},
	domain.CategoryShopping: {
		SubTypeKey:  "itemType",
		QuantityKey: "weight",
		Unit:        "kg",
		Factors: map[SubType]float64{
			SubTypeElectronics: 18.7,
			SubTypeClothing:    12.5,
			SubTypeFurniture:   3.2,
			SubTypeBooks:       1.5,
			SubTypeGroceries:   2.1,
			SubTypeOther:       3.5,
		},
	},
	domain.CategoryWaste: {
		SubTypeKey:  "wasteType",
		QuantityKey: "weight",
		Unit:        "kg",
		Factors: map[SubType]float64{
			SubTypePlastic:    3.1,
			SubTypePaper:      1.1,
			SubTypeOrganic:    0.85,
			SubTypeElectronic: 9.2,
			SubTypeHazardous:  4.5,
			SubTypeOther:      2.0,
		},
	},
}

// Table returns the factor table of a category. The "other" category and
// unknown categories have no table.
func Table(category domain.Category) (FactorTable, bool) {
	t, ok := factorTables[category]
	return t, ok
}

// Factor returns the emission factor for a category sub-type.
func Factor(category domain.Category, subType SubType) (float64, bool) {
	t, ok := factorTables[category]
	if !ok {
		return 0, false
	}
	f, ok := t.Factors[subType]
	return f, ok
}

// SubTypes lists the known sub-types of a category in alphabetical order.
func SubTypes(category domain.Category) []SubType {
	t, ok := factorTables[category]
	if !ok {
		return nil
	}
	out := make([]SubType, 0, len(t.Factors))
	for st := range t.Factors {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}
