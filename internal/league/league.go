// Package league implements the handicap and standings engine: round
// differentials, windowed handicap indexes, course-handicap conversion, and
// leaderboard ranking. Every operation is a pure function over the record
// snapshot it is handed; persistence and triggering belong to the caller.
package league

import (
	"fmt"
	"strconv"
	"strings"
)

// WindowPolicy selects which rounds feed the handicap average. The league
// has genuinely run under both policies in different seasons, so the choice
// is configuration, never a constant.
type WindowPolicy string

const (
	// WindowSeason averages every qualifying round (minimum one).
	WindowSeason WindowPolicy = "season"
	// WindowRolling4 averages the most recent four rounds by week
	// (minimum four; older rounds are ignored).
	WindowRolling4 WindowPolicy = "rolling4"
)

func (p WindowPolicy) Valid() bool {
	return p == WindowSeason || p == WindowRolling4
}

// minRounds an entity needs before it has a handicap at all.
func (p WindowPolicy) minRounds() int {
	if p == WindowRolling4 {
		return rollingWindowSize
	}
	return 1
}

// SubjectPolicy selects whether handicaps track teams (scramble totals) or
// individual players (earlier league format).
type SubjectPolicy string

const (
	SubjectTeam   SubjectPolicy = "team"
	SubjectPlayer SubjectPolicy = "player"
)

func (p SubjectPolicy) Valid() bool {
	return p == SubjectTeam || p == SubjectPlayer
}

// RankingStrategy selects how the leaderboard orders teams.
type RankingStrategy string

const (
	// RankRaw orders by total strokes.
	RankRaw RankingStrategy = "raw"
	// RankNet orders by total strokes minus accumulated handicap credit.
	RankNet RankingStrategy = "net"
)

func (s RankingStrategy) Valid() bool {
	return s == RankRaw || s == RankNet
}

// Config carries the policy choices for one deployment.
type Config struct {
	Window  WindowPolicy
	Subject SubjectPolicy
}

func (c Config) validate() error {
	if !c.Window.Valid() {
		return fmt.Errorf("unknown window policy %q", c.Window)
	}
	if !c.Subject.Valid() {
		return fmt.Errorf("unknown subject policy %q", c.Subject)
	}
	return nil
}

// EntityID identifies a handicap subject. Team entities are keyed by id,
// player entities by name; the prefix keeps the two key spaces disjoint so a
// season can switch subject policy without colliding rows.
type EntityID string

func TeamEntity(id int64) EntityID {
	return EntityID("team:" + strconv.FormatInt(id, 10))
}

func PlayerEntity(name string) EntityID {
	return EntityID("player:" + name)
}

// TeamID reports the team id for a team entity, or false for player entities.
func (e EntityID) TeamID() (int64, bool) {
	raw, ok := strings.CutPrefix(string(e), "team:")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
