package league

import (
	"fmt"
	"sort"

	"github.com/tclausen/backnine/internal/models"
)

// Standing is one leaderboard row. Rank is 1-based; 0 means unranked, which
// only happens for teams with no rounds played (they sort after every ranked
// team).
type Standing struct {
	TeamID        int64   `json:"teamId"`
	TeamName      string  `json:"teamName"`
	RawScore      int     `json:"rawScore"`
	AdjustedScore float64 `json:"adjustedScore"`
	RoundsPlayed  int     `json:"roundsPlayed"`
	Rank          int     `json:"rank,omitempty"`
}

// RankStandings produces the leaderboard. Lower totals rank better (this is
// golf); ties break by MORE rounds played first, then team name, then id so
// the order is total and recomputation is byte-stable.
//
// Under RankNet the sort key is rawScore - handicapIndex * roundsPlayed,
// with a missing handicap treated as zero at this point of use. Scores
// referencing unknown teams are skipped. Handicaps may be nil for RankRaw.
func RankStandings(teams []models.Team, scores []models.Score, handicaps map[EntityID]HandicapRecord, strategy RankingStrategy) ([]Standing, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("unknown ranking strategy %q", strategy)
	}

	byTeam := make(map[int64]*Standing, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &Standing{TeamID: t.ID, TeamName: t.Name}
	}
	for _, s := range scores {
		row, ok := byTeam[s.TeamID]
		if !ok {
			continue
		}
		row.RawScore += s.TeamTotal
		row.RoundsPlayed++
	}

	rows := make([]Standing, 0, len(byTeam))
	for _, t := range teams {
		row := byTeam[t.ID]
		row.AdjustedScore = float64(row.RawScore)
		if strategy == RankNet {
			if rec, ok := handicaps[TeamEntity(row.TeamID)]; ok {
				row.AdjustedScore = float64(row.RawScore) - rec.HandicapIndex*float64(row.RoundsPlayed)
			}
		}
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		aPlayed, bPlayed := a.RoundsPlayed > 0, b.RoundsPlayed > 0
		if aPlayed != bPlayed {
			return aPlayed
		}
		if aPlayed && a.AdjustedScore != b.AdjustedScore {
			return a.AdjustedScore < b.AdjustedScore
		}
		if a.RoundsPlayed != b.RoundsPlayed {
			return a.RoundsPlayed > b.RoundsPlayed
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})

	rank := 0
	for i := range rows {
		if rows[i].RoundsPlayed == 0 {
			continue
		}
		rank++
		rows[i].Rank = rank
	}
	return rows, nil
}
