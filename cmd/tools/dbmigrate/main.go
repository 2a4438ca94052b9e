// cmd/tools/dbmigrate/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		dbPath         = flag.String("db", "", "Path to SQLite database (sqlite only)")
		dbURL          = flag.String("url", "", "Database URL (postgres only, defaults to DATABASE_URL)")
		migrationsPath = flag.String("migrations", "internal/db/migrations", "Path to migrations directory")
		command        = flag.String("command", "", "Command to run (up, down, version)")
	)
	flag.Parse()

	if *command == "" {
		log.Println("The -command flag is required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	databaseURL, err := resolveDatabaseURL(*dbPath, *dbURL)
	if err != nil {
		log.Fatalf("Invalid database target: %v", err)
	}

	absMigrations, err := filepath.Abs(*migrationsPath)
	if err != nil {
		log.Fatalf("Invalid migrations path: %v", err)
	}
	if _, err := os.Stat(absMigrations); os.IsNotExist(err) {
		log.Fatalf("Migrations directory does not exist: %s", absMigrations)
	}

	sourceURL := fmt.Sprintf("file://%s", absMigrations)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Successfully ran migrations up")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		log.Println("Successfully ran migrations down")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		log.Printf("Current version: %d, Dirty: %v\n", version, dirty)

	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

// resolveDatabaseURL picks the migration target. A file path means local
// SQLite; otherwise a postgres URL is taken from the flag or environment.
func resolveDatabaseURL(dbPath, dbURL string) (string, error) {
	if dbPath != "" {
		absDB, err := filepath.Abs(dbPath)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
			return "", err
		}
		return fmt.Sprintf("sqlite3://%s", absDB), nil
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return "", fmt.Errorf("either -db or -url (or DATABASE_URL) is required")
	}
	return dbURL, nil
}
