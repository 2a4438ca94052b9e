package league

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/tclausen/backnine/internal/models"
)

type fakeStore struct {
	teams    []models.Team
	scores   []models.Score
	courses  []models.Course
	replaced []models.Handicap
	listErr  error
}

func (f *fakeStore) ListTeams(context.Context) ([]models.Team, error) {
	return f.teams, f.listErr
}

func (f *fakeStore) ListScores(context.Context) ([]models.Score, error) {
	return f.scores, f.listErr
}

func (f *fakeStore) ListCourses(context.Context) ([]models.Course, error) {
	return f.courses, f.listErr
}

func (f *fakeStore) ReplaceHandicaps(_ context.Context, handicaps []models.Handicap) error {
	f.replaced = handicaps
	return nil
}

func TestRecalculateRegeneratesAllRows(t *testing.T) {
	store := &fakeStore{
		teams: []models.Team{
			{ID: 2, Name: "Shankopotamus"},
			{ID: 1, Name: "The Mulligans"},
		},
		courses: testCourses(),
		scores: []models.Score{
			teamScore(1, 1, 1, "Willow Creek", 40),
			teamScore(2, 2, 1, "Willow Creek", 44),
		},
	}
	n, err := Recalculate(context.Background(), store, Config{Window: WindowSeason, Subject: SubjectTeam})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(store.replaced) != 2 {
		t.Fatalf("persisted %d rows, want 2", len(store.replaced))
	}
	if !sort.SliceIsSorted(store.replaced, func(i, j int) bool {
		return store.replaced[i].Entity < store.replaced[j].Entity
	}) {
		t.Fatalf("persisted rows must be sorted by entity for stable output")
	}
	byEntity := HandicapsByEntity(store.replaced)
	rec, ok := byEntity[TeamEntity(1)]
	if !ok {
		t.Fatalf("missing handicap for team 1")
	}
	if rec.HandicapIndex != 5.3 || rec.RoundsPlayed != 1 {
		t.Fatalf("team 1 record = %+v, want index 5.3 over 1 round", rec)
	}
}

func TestRecalculatePropagatesStoreErrors(t *testing.T) {
	wantErr := errors.New("disk gone")
	store := &fakeStore{listErr: wantErr}
	if _, err := Recalculate(context.Background(), store, Config{Window: WindowSeason, Subject: SubjectTeam}); !errors.Is(err, wantErr) {
		t.Fatalf("got err %v, want wrapped %v", err, wantErr)
	}
}
