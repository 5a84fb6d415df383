package hdd

import "math"

type stressCheck struct {
	tensileMPa     float64
	allowableMPa   float64
	sfTensile      float64
	collapseMPa    float64
	hydrostaticMPa float64
	sfCollapse     float64
}

// levyCollapse is the critical external pressure of a thin ring,
// derated for ovality: [2 E f_o / (1 - v^2)] * [1 / (SDR - 1)]^3.
func levyCollapse(c Constants, sdr float64) float64 {
	ring := 2 * c.ModulusMPa * c.OvalityFactor / (1 - c.PoissonRatio*c.PoissonRatio)
	return ring * math.Pow(1/(sdr-1), 3)
}

func evaluateStress(c Constants, pipe PipeParams, path BorePathParams, sec pipeSection, pullN float64) stressCheck {
	areaMM2 := sec.areaM2 * 1e6
	tensile := pullN / areaMM2
	allowable := pipe.YieldStrengthMPa * c.AllowableStressRatio

	pcr := levyCollapse(c, pipe.SDR)
	hydro := path.MudDensityKgM3 * c.Gravity * path.DepthM / 1e6
	// Floored so a surface-level path keeps a finite, continuous factor.
	head := math.Max(hydro, c.Epsilon)

	return stressCheck{
		tensileMPa:     tensile,
		allowableMPa:   allowable,
		sfTensile:      allowable / (tensile + c.Epsilon),
		collapseMPa:    pcr,
		hydrostaticMPa: hydro,
		sfCollapse:     pcr / head,
	}
}
