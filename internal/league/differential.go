package league

import (
	"errors"
	"fmt"
)

// slopeBaseline is the USGA neutral slope; a course of this slope leaves the
// raw score-over-rating untouched.
const slopeBaseline = 113

// ErrInvalidCourse marks reference data bad enough to abort a computation:
// a course with a non-positive slope would divide the differential by zero.
// This is distinct from a score referencing a course that does not exist,
// which only excludes that round.
var ErrInvalidCourse = errors.New("invalid course record")

// Differential normalizes one round against course difficulty:
// (score - rating) * 113 / slope. The result is not rounded; rounding
// happens once, after averaging, in ComputeHandicaps.
func Differential(score int, rating float64, slope int) (float64, error) {
	if slope <= 0 {
		return 0, fmt.Errorf("%w: slope %d", ErrInvalidCourse, slope)
	}
	return (float64(score) - rating) * slopeBaseline / float64(slope), nil
}
