package league

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tclausen/backnine/internal/models"
)

func intPtr(v int) *int { return &v }

func testCourses() []models.Course {
	return []models.Course{
		{Name: "Willow Creek", Par: 36, Slope: 113, Rating: 34.5},
		{Name: "Stony Brook", Par: 35, Slope: 120, Rating: 33.8},
	}
}

func teamScore(id int64, teamID int64, week int, course string, total int) models.Score {
	return models.Score{ID: id, TeamID: teamID, CourseName: course, Week: week, TeamTotal: total}
}

func TestComputeHandicapsRollingWindowUsesLastFour(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "The Mulligans", Player1: "Al", Player2: "Bo"}}
	cfg := Config{Window: WindowRolling4, Subject: SubjectTeam}

	// Four rounds on a neutral-slope course: differentials 3.5 through 6.5.
	scores := []models.Score{
		teamScore(1, 1, 1, "Willow Creek", 38),
		teamScore(2, 1, 2, "Willow Creek", 39),
		teamScore(3, 1, 3, "Willow Creek", 40),
		teamScore(4, 1, 4, "Willow Creek", 41),
	}
	got, err := ComputeHandicaps(teams, scores, testCourses(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, ok := got[TeamEntity(1)]
	if !ok {
		t.Fatalf("expected handicap for team 1")
	}
	// avg((3.5, 4.5, 5.5, 6.5)) * 0.96 = 4.8
	if rec.HandicapIndex != 4.8 {
		t.Fatalf("HandicapIndex = %v, want 4.8", rec.HandicapIndex)
	}
	if rec.RoundsPlayed != 4 {
		t.Fatalf("RoundsPlayed = %d, want 4", rec.RoundsPlayed)
	}

	// A fifth round drops the earliest week from the window but still counts
	// toward rounds played. Weeks are shuffled to prove ordering is by week,
	// not input position.
	scores = append(scores, teamScore(5, 1, 5, "Willow Creek", 42))
	scores[0], scores[4] = scores[4], scores[0]
	got, err = ComputeHandicaps(teams, scores, testCourses(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec = got[TeamEntity(1)]
	// avg((4.5, 5.5, 6.5, 7.5)) * 0.96 = 5.76 -> 5.8
	if rec.HandicapIndex != 5.8 {
		t.Fatalf("HandicapIndex after fifth round = %v, want 5.8", rec.HandicapIndex)
	}
	if rec.RoundsPlayed != 5 {
		t.Fatalf("RoundsPlayed = %d, want 5", rec.RoundsPlayed)
	}
}

func TestComputeHandicapsRollingRequiresFourRounds(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "The Mulligans"}}
	scores := []models.Score{
		teamScore(1, 1, 1, "Willow Creek", 40),
		teamScore(2, 1, 2, "Willow Creek", 40),
		teamScore(3, 1, 3, "Willow Creek", 40),
	}
	got, err := ComputeHandicaps(teams, scores, testCourses(), Config{Window: WindowRolling4, Subject: SubjectTeam})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got[TeamEntity(1)]; ok {
		t.Fatalf("expected no handicap with only 3 rounds under rolling-4")
	}
}

func TestComputeHandicapsSeasonAveragesEverything(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "The Mulligans"}}
	cfg := Config{Window: WindowSeason, Subject: SubjectTeam}

	scores := []models.Score{teamScore(1, 1, 1, "Willow Creek", 40)}
	got, err := ComputeHandicaps(teams, scores, testCourses(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, ok := got[TeamEntity(1)]
	if !ok {
		t.Fatalf("season policy should produce a handicap after one round")
	}
	if rec.RoundsPlayed != 1 {
		t.Fatalf("RoundsPlayed = %d, want 1", rec.RoundsPlayed)
	}
	// 5.5 * 0.96 = 5.28 -> 5.3
	if rec.HandicapIndex != 5.3 {
		t.Fatalf("HandicapIndex = %v, want 5.3", rec.HandicapIndex)
	}

	// Adding a round extends the average over all rounds.
	scores = append(scores, teamScore(2, 1, 2, "Willow Creek", 42))
	got, err = ComputeHandicaps(teams, scores, testCourses(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec = got[TeamEntity(1)]
	if rec.RoundsPlayed != 2 {
		t.Fatalf("RoundsPlayed = %d, want 2", rec.RoundsPlayed)
	}
	// avg((5.5, 7.5)) * 0.96 = 6.24 -> 6.2
	if rec.HandicapIndex != 6.2 {
		t.Fatalf("HandicapIndex = %v, want 6.2", rec.HandicapIndex)
	}
}

func TestComputeHandicapsIndexRoundedToOneDecimal(t *testing.T) {
	teams := []models.Team{{ID: 1}}
	scores := []models.Score{teamScore(1, 1, 1, "Stony Brook", 41)}
	got, err := ComputeHandicaps(teams, scores, testCourses(), Config{Window: WindowSeason, Subject: SubjectTeam})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := got[TeamEntity(1)]
	if math.Abs(rec.HandicapIndex*10-math.Round(rec.HandicapIndex*10)) > 1e-9 {
		t.Fatalf("HandicapIndex %v is not rounded to one decimal", rec.HandicapIndex)
	}
}

func TestComputeHandicapsSkipsOrphanedScores(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "The Mulligans"}}
	scores := []models.Score{
		teamScore(1, 1, 1, "Willow Creek", 40),
		teamScore(2, 99, 2, "Willow Creek", 40), // unknown team
		teamScore(3, 1, 3, "Ghost Pines", 40),   // unknown course
	}
	got, err := ComputeHandicaps(teams, scores, testCourses(), Config{Window: WindowSeason, Subject: SubjectTeam})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := got[TeamEntity(1)]
	if rec.RoundsPlayed != 1 {
		t.Fatalf("RoundsPlayed = %d, want 1 (orphaned rounds must be skipped)", rec.RoundsPlayed)
	}
	if _, ok := got[TeamEntity(99)]; ok {
		t.Fatalf("unknown team must not receive a handicap")
	}
}

func TestComputeHandicapsRejectsZeroSlopeCourse(t *testing.T) {
	teams := []models.Team{{ID: 1}}
	courses := []models.Course{{Name: "Broken Meadow", Par: 36, Slope: 0, Rating: 34.0}}
	scores := []models.Score{teamScore(1, 1, 1, "Broken Meadow", 40)}
	_, err := ComputeHandicaps(teams, scores, courses, Config{Window: WindowSeason, Subject: SubjectTeam})
	if !errors.Is(err, ErrInvalidCourse) {
		t.Fatalf("got err %v, want ErrInvalidCourse", err)
	}
}

func TestComputeHandicapsPlayerSubject(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "The Mulligans", Player1: "Al", Player2: "Bo"}}
	score := models.Score{
		ID: 1, TeamID: 1, CourseName: "Willow Creek", Week: 1,
		Player1Score: intPtr(42), Player2Score: intPtr(44), TeamTotal: 86,
	}
	got, err := ComputeHandicaps(teams, []models.Score{score}, testCourses(), Config{Window: WindowSeason, Subject: SubjectPlayer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got[TeamEntity(1)]; ok {
		t.Fatalf("player subject must not produce team entities")
	}
	al, ok := got[PlayerEntity("Al")]
	if !ok {
		t.Fatalf("expected handicap for player Al")
	}
	// (42 - 34.5) * 0.96 = 7.2
	if al.HandicapIndex != 7.2 {
		t.Fatalf("Al HandicapIndex = %v, want 7.2", al.HandicapIndex)
	}
	if _, ok := got[PlayerEntity("Bo")]; !ok {
		t.Fatalf("expected handicap for player Bo")
	}
}

func TestComputeHandicapsIdempotent(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "The Mulligans"}, {ID: 2, Name: "Shankopotamus"}}
	scores := []models.Score{
		teamScore(1, 1, 1, "Willow Creek", 40),
		teamScore(2, 2, 1, "Stony Brook", 43),
		teamScore(3, 1, 2, "Stony Brook", 41),
	}
	cfg := Config{Window: WindowSeason, Subject: SubjectTeam}
	first, err := ComputeHandicaps(teams, scores, testCourses(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeHandicaps(teams, scores, testCourses(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recomputation over unchanged input differed: %v vs %v", first, second)
	}
}

func TestComputeHandicapsRejectsUnknownPolicies(t *testing.T) {
	if _, err := ComputeHandicaps(nil, nil, nil, Config{Window: "monthly", Subject: SubjectTeam}); err == nil {
		t.Fatalf("expected error for unknown window policy")
	}
	if _, err := ComputeHandicaps(nil, nil, nil, Config{Window: WindowSeason, Subject: "pairs"}); err == nil {
		t.Fatalf("expected error for unknown subject policy")
	}
}
