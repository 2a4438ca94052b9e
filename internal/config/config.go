// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tclausen/backnine/internal/league"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	// Hosted-Postgres deployment
	URL string `yaml:"-"` // Loaded from environment
}

// LeagueConfig names the policy choices the league has flip-flopped on
// between seasons. They are explicit settings so a season switch is a config
// edit, not a code change.
type LeagueConfig struct {
	HandicapWindow  string `yaml:"handicap_window"`  // season | rolling4
	HandicapSubject string `yaml:"handicap_subject"` // team | player
	Ranking         string `yaml:"ranking"`          // raw | net
	RecalcCron      string `yaml:"recalc_cron"`
	MinTriggerWeek  int    `yaml:"min_trigger_week"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	League LeagueConfig `yaml:"league"`

	Admin struct {
		PasswordHash string `yaml:"-"` // Loaded from environment
	} `yaml:"admin"`
}

// Load loads both .env and yaml configuration.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyDefaults()

	// Load sensitive values from environment
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Admin.PasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.League.HandicapWindow == "" {
		c.League.HandicapWindow = string(league.WindowRolling4)
	}
	if c.League.HandicapSubject == "" {
		c.League.HandicapSubject = string(league.SubjectTeam)
	}
	if c.League.Ranking == "" {
		c.League.Ranking = string(league.RankRaw)
	}
	if c.League.RecalcCron == "" {
		c.League.RecalcCron = "0 3 * * *"
	}
	if c.League.MinTriggerWeek == 0 {
		c.League.MinTriggerWeek = 4
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if !league.WindowPolicy(c.League.HandicapWindow).Valid() {
		return fmt.Errorf("unsupported handicap window: %s", c.League.HandicapWindow)
	}
	if !league.SubjectPolicy(c.League.HandicapSubject).Valid() {
		return fmt.Errorf("unsupported handicap subject: %s", c.League.HandicapSubject)
	}
	if !league.RankingStrategy(c.League.Ranking).Valid() {
		return fmt.Errorf("unsupported ranking strategy: %s", c.League.Ranking)
	}
	if c.League.MinTriggerWeek < 1 {
		return fmt.Errorf("min_trigger_week must be at least 1")
	}

	return nil
}

// LeaguePolicies converts the validated settings into engine configuration.
func (c *Config) LeaguePolicies() league.Config {
	return league.Config{
		Window:  league.WindowPolicy(c.League.HandicapWindow),
		Subject: league.SubjectPolicy(c.League.HandicapSubject),
	}
}

// RankingStrategy returns the configured leaderboard ordering.
func (c *Config) RankingStrategy() league.RankingStrategy {
	return league.RankingStrategy(c.League.Ranking)
}
