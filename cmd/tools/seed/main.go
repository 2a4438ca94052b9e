// cmd/tools/seed/main.go
// seed loads spreadsheet CSV exports into the league database, then runs a
// handicap recalculation so the seeded season is immediately consistent.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tclausen/backnine/internal/config"
	"github.com/tclausen/backnine/internal/db"
	"github.com/tclausen/backnine/internal/importer"
	"github.com/tclausen/backnine/internal/league"
	"github.com/tclausen/backnine/internal/models"
)

const (
	configFlag   = "config"
	teamsFlag    = "teams"
	coursesFlag  = "courses"
	scoresFlag   = "scores"
	scheduleFlag = "schedule"
)

func main() {
	var (
		configPath   string
		teamsPath    string
		coursesPath  string
		scoresPath   string
		schedulePath string
	)

	app := &cli.App{
		Name:  "seed",
		Usage: "Load league spreadsheet CSV exports into the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        configFlag,
				Aliases:     []string{"c"},
				Usage:       "Path to the app config file",
				Value:       "config/config.yaml",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        teamsFlag,
				Usage:       "Path to the teams CSV export",
				Destination: &teamsPath,
			},
			&cli.StringFlag{
				Name:        coursesFlag,
				Usage:       "Path to the courses CSV export",
				Destination: &coursesPath,
			},
			&cli.StringFlag{
				Name:        scoresFlag,
				Usage:       "Path to the scores CSV export",
				Destination: &scoresPath,
			},
			&cli.StringFlag{
				Name:        scheduleFlag,
				Usage:       "Path to the schedule CSV export",
				Destination: &schedulePath,
			},
		},
		Action: func(cCtx *cli.Context) error {
			if teamsPath == "" && coursesPath == "" && scoresPath == "" && schedulePath == "" {
				return fmt.Errorf("nothing to seed, pass at least one of -%s, -%s, -%s, -%s",
					teamsFlag, coursesFlag, scoresFlag, scheduleFlag)
			}
			return run(configPath, teamsPath, coursesPath, scoresPath, schedulePath)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
}

func run(configPath, teamsPath, coursesPath, scoresPath, schedulePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store := database.Store

	if coursesPath != "" {
		if err := seedCourses(ctx, store, coursesPath); err != nil {
			return fmt.Errorf("seeding courses: %w", err)
		}
	}
	if teamsPath != "" {
		if err := seedTeams(ctx, store, teamsPath); err != nil {
			return fmt.Errorf("seeding teams: %w", err)
		}
	}
	if scoresPath != "" {
		if err := seedScores(ctx, store, scoresPath); err != nil {
			return fmt.Errorf("seeding scores: %w", err)
		}
	}
	if schedulePath != "" {
		if err := seedSchedule(ctx, store, schedulePath); err != nil {
			return fmt.Errorf("seeding schedule: %w", err)
		}
	}

	if scoresPath != "" {
		count, err := league.Recalculate(ctx, store, cfg.LeaguePolicies())
		if err != nil {
			return fmt.Errorf("recalculating handicaps: %w", err)
		}
		log.Info().Int("handicaps", count).Msg("Handicaps recalculated")
	}

	log.Info().Msg("Seed complete")
	return nil
}

func seedTeams(ctx context.Context, store *db.Store, path string) error {
	records, err := parseFile(path, importer.ParseTeams)
	if err != nil {
		return err
	}
	for _, rec := range records {
		id, err := store.CreateTeam(ctx, models.Team{
			Name:          rec.Name,
			Player1:       rec.Player1,
			Player2:       rec.Player2,
			PaymentStatus: rec.PaymentStatus,
		})
		if err != nil {
			return fmt.Errorf("team %q: %w", rec.Name, err)
		}
		log.Debug().Int64("team_id", id).Str("name", rec.Name).Msg("Team created")
	}
	log.Info().Int("count", len(records)).Msg("Teams seeded")
	return nil
}

func seedCourses(ctx context.Context, store *db.Store, path string) error {
	records, err := parseFile(path, importer.ParseCourses)
	if err != nil {
		return err
	}
	for _, rec := range records {
		err := store.CreateCourse(ctx, models.Course{
			Name:   rec.Name,
			Par:    rec.Par,
			Slope:  rec.Slope,
			Rating: rec.Rating,
		})
		if err != nil {
			return fmt.Errorf("course %q: %w", rec.Name, err)
		}
	}
	log.Info().Int("count", len(records)).Msg("Courses seeded")
	return nil
}

func seedScores(ctx context.Context, store *db.Store, path string) error {
	records, err := parseFile(path, importer.ParseScores)
	if err != nil {
		return err
	}

	teams, err := store.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("listing teams: %w", err)
	}
	teamIDs := make(map[string]int64, len(teams))
	for _, t := range teams {
		teamIDs[t.Name] = t.ID
	}

	for _, rec := range records {
		teamID, ok := teamIDs[rec.TeamName]
		if !ok {
			return fmt.Errorf("score references unknown team %q, seed teams first", rec.TeamName)
		}
		_, err := store.CreateScore(ctx, models.Score{
			TeamID:       teamID,
			CourseName:   rec.CourseName,
			Week:         rec.Week,
			Date:         rec.Date,
			Nine:         rec.Nine,
			Player1Score: rec.Player1Score,
			Player2Score: rec.Player2Score,
			TeamTotal:    rec.TeamTotal,
		})
		if err != nil {
			return fmt.Errorf("score for team %q week %d: %w", rec.TeamName, rec.Week, err)
		}
	}
	log.Info().Int("count", len(records)).Msg("Scores seeded")
	return nil
}

func seedSchedule(ctx context.Context, store *db.Store, path string) error {
	records, err := parseFile(path, importer.ParseSchedule)
	if err != nil {
		return err
	}
	for _, rec := range records {
		err := store.UpsertScheduleWeek(ctx, models.ScheduleWeek{
			Week:       rec.Week,
			Date:       rec.Date,
			CourseName: rec.CourseName,
			Nine:       rec.Nine,
		})
		if err != nil {
			return fmt.Errorf("schedule week %d: %w", rec.Week, err)
		}
	}
	log.Info().Int("count", len(records)).Msg("Schedule seeded")
	return nil
}

func parseFile[T any](path string, parse func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
