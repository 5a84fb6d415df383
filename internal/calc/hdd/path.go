package hdd

import "math"

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

type pathSegments struct {
	radiusM       float64
	entryAngle    float64
	exitAngle     float64
	entryArcM     float64
	exitArcM      float64
	bottomM       float64
	verticalDropM float64
	// depthOK is false when the arcs alone descend further than the
	// requested depth. The bottom length is computed the same way in both
	// cases; only the warning differs.
	depthOK bool
}

func segmentPath(c Constants, pipe PipeParams, path BorePathParams) pathSegments {
	minRadius := pipe.OuterDiameterMM / 1000.0 * c.MinBendRadiusFactor
	radius := math.Max(minRadius, c.MinDesignRadiusM)

	entry := radians(path.EntryAngleDeg)
	exit := radians(path.ExitAngleDeg)
	entryArc := radius * entry
	exitArc := radius * exit
	drop := radius*(1-math.Cos(entry)) + radius*(1-math.Cos(exit))

	return pathSegments{
		radiusM:       radius,
		entryAngle:    entry,
		exitAngle:     exit,
		entryArcM:     entryArc,
		exitArcM:      exitArc,
		bottomM:       math.Max(0, path.TotalLengthM-entryArc-exitArc),
		verticalDropM: drop,
		depthOK:       path.DepthM >= drop,
	}
}

// fluidDrag is an empirical stand-in for hydrokinetic shear: a per-metre
// force floored at DragFloorNM and linear in viscosity above it.
func fluidDrag(c Constants, path BorePathParams) (perMeter, total float64) {
	perMeter = math.Max(c.DragFloorNM, path.ViscosityCP*c.DragPerCentipoise)
	return perMeter, perMeter * path.TotalLengthM
}
