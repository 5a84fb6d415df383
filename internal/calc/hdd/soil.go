package hdd

type FrictionRange struct {
	Suggested float64 `json:"suggested"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

var soilFriction = map[SoilType]FrictionRange{
	SoilClay:   {Suggested: 0.25, Min: 0.2, Max: 0.3},
	SoilSand:   {Suggested: 0.35, Min: 0.3, Max: 0.4},
	SoilGravel: {Suggested: 0.45, Min: 0.4, Max: 0.5},
	SoilRock:   {Suggested: 0.55, Min: 0.5, Max: 0.6},
}

var SoilTypes = []SoilType{SoilClay, SoilSand, SoilGravel, SoilRock}

var CrossingTypes = []CrossingType{CrossingStandard, CrossingRiver, CrossingRoad}

var Materials = []Material{MaterialPE100, MaterialPE80}

// SuggestFriction returns the default soil friction coefficient for a soil
// type. Unknown soils get 0.3.
func SuggestFriction(s SoilType) FrictionRange {
	if r, ok := soilFriction[s]; ok {
		return r
	}
	return FrictionRange{Suggested: 0.3, Min: 0.3, Max: 0.3}
}

// TypicalYield is the short-term yield strength usually assumed for a grade.
func TypicalYield(m Material) float64 {
	if m == MaterialPE80 {
		return 19
	}
	return 24
}
