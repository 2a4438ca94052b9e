package league

import "testing"

func TestCourseHandicapSlopeOnly(t *testing.T) {
	tests := []struct {
		name  string
		index float64
		slope int
		want  int
	}{
		{"zero index gives no strokes", 0, 130, 0},
		{"neutral slope", 10.0, 113, 10},
		{"steep slope scales up", 10.0, 130, 12},   // 11.504 -> 12
		{"gentle slope scales down", 10.0, 96, 8},  // 8.496 -> 8
		{"negative index", -2.0, 113, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CourseHandicap(tt.index, tt.slope); got != tt.want {
				t.Fatalf("CourseHandicap(%v, %d) = %d, want %d", tt.index, tt.slope, got, tt.want)
			}
		})
	}
}

func TestCourseHandicapWithPar(t *testing.T) {
	// Rating equal to par reduces to the slope-only formula.
	if got := CourseHandicapWithPar(10.0, 113, 72, 72); got != 10 {
		t.Fatalf("CourseHandicapWithPar(10.0, 113, 72, 72) = %d, want 10", got)
	}
	// A nine rated under par gives back the difference.
	if got := CourseHandicapWithPar(10.0, 113, 34.5, 36); got != 9 {
		t.Fatalf("CourseHandicapWithPar(10.0, 113, 34.5, 36) = %d, want 9", got)
	}
	// An absent handicap still means no strokes even when rating != par.
	if got := CourseHandicapWithPar(0, 120, 38.0, 36); got != 0 {
		t.Fatalf("CourseHandicapWithPar(0, ...) = %d, want 0", got)
	}
}
