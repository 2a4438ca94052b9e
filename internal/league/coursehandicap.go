package league

import "math"

// CourseHandicap converts a handicap index into whole strokes given on a
// course: round(index * slope / 113). This is the formula the backend has
// always used. A zero (or defaulted-from-absent) index yields zero strokes.
func CourseHandicap(index float64, slope int) int {
	if index == 0 {
		return 0
	}
	return int(math.Round(index * float64(slope) / slopeBaseline))
}

// CourseHandicapWithPar additionally credits the gap between course rating
// and par: round(index * slope / 113 + (rating - par)). The dashboard's
// course table used this form while the backend used the slope-only one;
// the two were never reconciled, so both are exposed and the caller picks.
func CourseHandicapWithPar(index float64, slope int, rating float64, par int) int {
	if index == 0 {
		return 0
	}
	return int(math.Round(index*float64(slope)/slopeBaseline + (rating - float64(par))))
}
