package domain

import "math"

// SegmentAngle is the angular width of one wheel segment in degrees.
const SegmentAngle = 360.0 / float64(SegmentCount)

// Resolve maps a cumulative clockwise rotation in degrees to the
// segment index under the fixed pointer at the top of the wheel.
// Pure: the same rotation always resolves to the same index.
func Resolve(rotation float64, n int) int {
	norm := math.Mod(rotation, 360)
	if norm < 0 {
		norm += 360
	}

	// The wheel turns clockwise under a fixed pointer, so the segment
	// under the pointer is measured counter-clockwise from the mark.
	effective := math.Mod(360-norm, 360)

	idx := int(effective / (360 / float64(n)))
	// Guard float rounding at exact segment boundaries.
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

const (
	// minTurns and maxTurns bound the whole extra revolutions added
	// per spin, inclusive.
	minTurns = 5
	maxTurns = 9
)

// NextTarget computes the cumulative rotation a new spin stops at:
// the previous rotation plus 5 to 9 whole revolutions and a uniform
// offset within the final turn. Rotation never decreases, so the
// wheel always animates forward.
func NextTarget(prev float64, rng RNG) float64 {
	turns := minTurns + rng.Intn(maxTurns-minTurns+1)
	return prev + float64(turns)*360 + rng.Float64()*360
}
