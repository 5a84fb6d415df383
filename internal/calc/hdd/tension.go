package hdd

import "math"

// tensions holds the cumulative pulling load in N after each segment.
// The pipe is pulled from the exit pit towards the rig, so the first arc
// it meets is the exit-side arc.
type tensions struct {
	a, b, c, d float64
}

func accumulateTension(c Constants, w weights, seg pathSegments, mu float64) tensions {
	var t tensions
	net := math.Abs(w.netNM)

	// A: pipe dragged over rollers or ground before entering the hole.
	t.a = math.Abs(w.airNM) * mu * c.SurfaceLengthM

	// B: exit-side arc, friction then capstan wrap over the exit angle.
	t.b = (t.a + net*seg.exitArcM*mu) * math.Exp(mu*seg.exitAngle)

	// C: straight bottom, Coulomb friction only.
	t.c = t.b + net*seg.bottomM*mu

	// D: rig-side arc, wrap over the entry angle.
	t.d = (t.c + net*seg.entryArcM*mu) * math.Exp(mu*seg.entryAngle)

	return t
}
