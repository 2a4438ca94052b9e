package league

import (
	"errors"
	"math"
	"testing"
)

func TestDifferentialFormula(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		rating float64
		slope  int
		want   float64
	}{
		{"neutral slope", 40, 34.5, 113, 5.5},
		{"steep slope", 45, 35.2, 130, (45 - 35.2) * 113 / 130},
		{"under rating", 33, 34.5, 113, -1.5},
		{"easy slope", 41, 33.0, 96, (41 - 33.0) * 113 / 96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Differential(tt.score, tt.rating, tt.slope)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Differential(%d, %v, %d) = %v, want %v", tt.score, tt.rating, tt.slope, got, tt.want)
			}
		})
	}
}

func TestDifferentialRejectsNonPositiveSlope(t *testing.T) {
	for _, slope := range []int{0, -5} {
		if _, err := Differential(40, 34.5, slope); !errors.Is(err, ErrInvalidCourse) {
			t.Fatalf("slope %d: got err %v, want ErrInvalidCourse", slope, err)
		}
	}
}
