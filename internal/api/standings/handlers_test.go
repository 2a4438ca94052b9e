package standings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tclausen/backnine/internal/api/standings"
	"github.com/tclausen/backnine/internal/league"
	"github.com/tclausen/backnine/internal/models"
	"github.com/tclausen/backnine/internal/testutil"
)

type standingsResponse struct {
	Strategy  string            `json:"strategy"`
	Standings []league.Standing `json:"standings"`
}

func seedSeason(t *testing.T) {
	t.Helper()

	database := testutil.NewTestDB(t)
	standings.InitHandlers(database, league.RankRaw)
	store := database.Store
	ctx := context.Background()

	teams := []models.Team{
		{Name: "Al & Bob", Player1: "Al", Player2: "Bob"},
		{Name: "Carl & Dave", Player1: "Carl", Player2: "Dave"},
	}
	totals := map[string][]int{
		"Al & Bob":    {41, 40, 42},
		"Carl & Dave": {39, 38, 40},
	}
	if err := store.CreateCourse(ctx, models.Course{Name: "Willow Creek", Par: 36, Slope: 113, Rating: 34.5}); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	for _, team := range teams {
		id, err := store.CreateTeam(ctx, team)
		if err != nil {
			t.Fatalf("CreateTeam failed: %v", err)
		}
		for i, total := range totals[team.Name] {
			_, err := store.CreateScore(ctx, models.Score{
				TeamID: id, CourseName: "Willow Creek", Week: i + 1,
				Date: "2026-05-05", Nine: "front", TeamTotal: total,
			})
			if err != nil {
				t.Fatalf("CreateScore failed: %v", err)
			}
		}
	}
	err := store.ReplaceHandicaps(ctx, []models.Handicap{
		{Entity: "team:1", HandicapIndex: 6.0, RoundsPlayed: 3},
		{Entity: "team:2", HandicapIndex: 1.0, RoundsPlayed: 3},
	})
	if err != nil {
		t.Fatalf("ReplaceHandicaps failed: %v", err)
	}
}

func TestHandleListRaw(t *testing.T) {
	seedSeason(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/standings", nil)
	rec := httptest.NewRecorder()
	standings.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp standingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Strategy != "raw" {
		t.Errorf("expected configured strategy raw, got %q", resp.Strategy)
	}
	if len(resp.Standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(resp.Standings))
	}
	if resp.Standings[0].TeamName != "Carl & Dave" || resp.Standings[0].Rank != 1 {
		t.Errorf("expected Carl & Dave ranked first on raw strokes, got %+v", resp.Standings[0])
	}
	if resp.Standings[0].RawScore != 117 {
		t.Errorf("expected raw score 117, got %v", resp.Standings[0].RawScore)
	}
}

func TestHandleListNetOverride(t *testing.T) {
	seedSeason(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/standings?strategy=net", nil)
	rec := httptest.NewRecorder()
	standings.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp standingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Strategy != "net" {
		t.Errorf("expected strategy net, got %q", resp.Strategy)
	}
	// Al & Bob: 123 - 6.0*3 = 105, Carl & Dave: 117 - 1.0*3 = 114.
	if resp.Standings[0].TeamName != "Al & Bob" {
		t.Errorf("expected handicap credit to flip the board, got %+v", resp.Standings[0])
	}
	if resp.Standings[0].AdjustedScore != 105 {
		t.Errorf("expected adjusted score 105, got %v", resp.Standings[0].AdjustedScore)
	}
}

func TestHandleListRejectsUnknownStrategy(t *testing.T) {
	seedSeason(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/standings?strategy=stableford", nil)
	rec := httptest.NewRecorder()
	standings.HandleList(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
