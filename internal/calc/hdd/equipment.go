package hdd

import "fmt"

type equipment struct {
	boreholeMM float64
	pullbackT  float64
}

func recommendEquipment(c Constants, pipe PipeParams, pullKN float64) equipment {
	return equipment{
		boreholeMM: pipe.OuterDiameterMM * c.ReamingRatio,
		pullbackT:  pullKN / c.Gravity * c.RigSafetyMargin,
	}
}

// collectWarnings appends in detection order: tensile, collapse, geometry.
func collectWarnings(c Constants, path BorePathParams, seg pathSegments, st stressCheck) []string {
	warnings := []string{}
	if st.sfTensile < c.SafetyFactorThreshold {
		warnings = append(warnings, fmt.Sprintf("Tensile safety factor is low (%.2f < %.1f).", st.sfTensile, c.SafetyFactorThreshold))
	}
	if st.sfCollapse < c.SafetyFactorThreshold {
		warnings = append(warnings, fmt.Sprintf("Collapse safety factor is low (%.2f < %.1f). Use a lower SDR (thicker wall).", st.sfCollapse, c.SafetyFactorThreshold))
	}
	if !seg.depthOK {
		warnings = append(warnings, fmt.Sprintf(
			"Geometry warning: depth %gm is not reachable with bend radius %.0fm (arcs need %.1fm). Lengthen the bore or reduce the angles.",
			path.DepthM, seg.radiusM, seg.verticalDropM))
	}
	return warnings
}
