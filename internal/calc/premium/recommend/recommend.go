package recommend

import (
	"fmt"

	"HDDPull/internal/calc/hdd"
)

type SoilRecommendInput struct {
	SoilType     hdd.SoilType     `json:"soil_type"`
	CrossingType hdd.CrossingType `json:"crossing_type"`
}

type SoilRecommendResult struct {
	SoilFriction float64           `json:"soil_friction"`
	Range        hdd.FrictionRange `json:"range"`
	Notes        []string          `json:"notes"`
}

var crossingNotes = map[hdd.CrossingType][]string{
	hdd.CrossingRiver: {
		"Watch annular pressure under the river bed; hydraulic fracture (frac-out) risk rises with shallow cover.",
		"Keep the pipe ballast and mud density under control; an empty pipe floats strongly in heavy mud.",
	},
	hdd.CrossingRoad: {
		"Monitor the road surface for settlement or heave during reaming and pullback.",
		"Keep cover below the carriageway at least as deep as the local authority requires.",
	},
}

var soilNotes = map[hdd.SoilType]string{
	hdd.SoilClay:   "Clay swells and sticks; plan extra reaming passes and good mud hydration.",
	hdd.SoilSand:   "Sand needs a good filter cake; keep mud viscosity up to hold the hole open.",
	hdd.SoilGravel: "Gravel is prone to collapse and mud loss; consider a larger reaming ratio.",
	hdd.SoilRock:   "Rock needs rock tooling; friction is high and reaming is slow.",
}

// SoilFriction suggests the friction coefficient to start from for a soil
// and adds advisory notes for the soil and crossing.
func SoilFriction(in SoilRecommendInput) (SoilRecommendResult, error) {
	switch in.SoilType {
	case hdd.SoilClay, hdd.SoilSand, hdd.SoilGravel, hdd.SoilRock:
	default:
		return SoilRecommendResult{}, fmt.Errorf("unknown soil type %q", in.SoilType)
	}
	r := hdd.SuggestFriction(in.SoilType)
	notes := []string{soilNotes[in.SoilType]}
	notes = append(notes, crossingNotes[in.CrossingType]...)
	return SoilRecommendResult{
		SoilFriction: r.Suggested,
		Range:        r,
		Notes:        notes,
	}, nil
}
