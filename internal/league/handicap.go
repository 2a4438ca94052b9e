package league

import (
	"math"
	"sort"

	"github.com/tclausen/backnine/internal/models"
)

// usgaMultiplier is the fixed USGA bonus-for-excellence factor applied to
// the averaged differential.
const usgaMultiplier = 0.96

const rollingWindowSize = 4

// HandicapRecord is the computed handicap for one entity. RoundsPlayed is
// the entity's total qualifying rounds, not the window size.
type HandicapRecord struct {
	HandicapIndex float64 `json:"handicapIndex"`
	RoundsPlayed  int     `json:"roundsPlayed"`
}

type ratedRound struct {
	week         int
	differential float64
}

// ComputeHandicaps derives a handicap index for every entity with enough
// qualifying rounds. Absence of an entry in the result is the "no handicap
// yet" signal; it is never an error.
//
// A score referencing an unknown team or an unknown course contributes
// nothing (the round is skipped, matching the historical behavior). A score
// referencing a course with a non-positive slope is a configuration error
// and fails the whole computation.
func ComputeHandicaps(teams []models.Team, scores []models.Score, courses []models.Course, cfg Config) (map[EntityID]HandicapRecord, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	teamByID := make(map[int64]models.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}
	courseByName := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		courseByName[c.Name] = c
	}

	rounds := make(map[EntityID][]ratedRound)
	for _, s := range scores {
		team, ok := teamByID[s.TeamID]
		if !ok {
			continue
		}
		course, ok := courseByName[s.CourseName]
		if !ok {
			continue
		}

		switch cfg.Subject {
		case SubjectTeam:
			diff, err := Differential(s.TeamTotal, course.Rating, course.Slope)
			if err != nil {
				return nil, err
			}
			entity := TeamEntity(team.ID)
			rounds[entity] = append(rounds[entity], ratedRound{week: s.Week, differential: diff})

		case SubjectPlayer:
			for _, p := range []struct {
				name  string
				score *int
			}{
				{team.Player1, s.Player1Score},
				{team.Player2, s.Player2Score},
			} {
				if p.name == "" || p.score == nil {
					continue
				}
				diff, err := Differential(*p.score, course.Rating, course.Slope)
				if err != nil {
					return nil, err
				}
				entity := PlayerEntity(p.name)
				rounds[entity] = append(rounds[entity], ratedRound{week: s.Week, differential: diff})
			}
		}
	}

	minRounds := cfg.Window.minRounds()
	result := make(map[EntityID]HandicapRecord, len(rounds))
	for entity, played := range rounds {
		if len(played) < minRounds {
			continue
		}
		sort.SliceStable(played, func(i, j int) bool {
			return played[i].week < played[j].week
		})

		window := played
		if cfg.Window == WindowRolling4 {
			window = played[len(played)-rollingWindowSize:]
		}

		sum := 0.0
		for _, r := range window {
			sum += r.differential
		}
		avg := sum / float64(len(window))

		result[entity] = HandicapRecord{
			HandicapIndex: roundIndex(avg * usgaMultiplier),
			RoundsPlayed:  len(played),
		}
	}
	return result, nil
}

// roundIndex rounds a handicap index to one decimal place.
func roundIndex(x float64) float64 {
	return math.Round(x*10) / 10
}
