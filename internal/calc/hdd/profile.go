package hdd

import (
	"iter"
	"math"
)

const profileSegments = 50

// GeneratePathProfile yields 51 points of a single sine arc spanning the bore,
// for charting. It does not follow the segmented path used by the tension
// model. The sequence is lazy and may be ranged over any number of times.
// The entry and exit angles are accepted for interface symmetry and do not
// shape the curve.
func GeneratePathProfile(totalLength, depth, entryAngle, exitAngle float64) iter.Seq[ProfilePoint] {
	amplitude := math.Abs(depth)
	return func(yield func(ProfilePoint) bool) {
		for i := 0; i <= profileSegments; i++ {
			t := float64(i) / profileSegments
			p := ProfilePoint{
				XM:     t * totalLength,
				DepthM: -amplitude * math.Sin(math.Pi*t),
			}
			switch i {
			case 0:
				p.Label = "Entry"
			case profileSegments / 2:
				p.Label = "Bottom"
			case profileSegments:
				p.Label = "Exit"
			}
			if !yield(p) {
				return
			}
		}
	}
}
