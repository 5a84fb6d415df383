package hdd

import "math"

type pipeSection struct {
	wallThicknessMM float64
	innerDiameterMM float64
	areaM2          float64
}

func resolvePipe(pipe PipeParams) pipeSection {
	wall := pipe.OuterDiameterMM / pipe.SDR
	id := pipe.OuterDiameterMM - 2*wall
	od := pipe.OuterDiameterMM / 1000.0
	idm := id / 1000.0
	return pipeSection{
		wallThicknessMM: wall,
		innerDiameterMM: id,
		areaM2:          math.Pi / 4 * (od*od - idm*idm),
	}
}

// weights are per metre of pipe, in N/m. Net is negative when the empty
// pipe floats against the crown of the borehole.
type weights struct {
	airNM      float64
	buoyancyNM float64
	netNM      float64
}

func weighPipe(c Constants, pipe PipeParams, sec pipeSection, mudDensity float64) weights {
	air := sec.areaM2 * c.PipeDensityKgM3 * c.Gravity
	od := pipe.OuterDiameterMM / 1000.0
	displaced := math.Pi / 4 * od * od
	buoyancy := displaced * mudDensity * c.Gravity
	return weights{
		airNM:      air,
		buoyancyNM: buoyancy,
		netNM:      air - buoyancy,
	}
}
