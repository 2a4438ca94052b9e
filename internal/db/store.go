// internal/db/store.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/tclausen/backnine/internal/config"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store provides record access over the opened database.
//
// Mutations take a per-table lock, so writes against one table complete in
// submission order while reads, and writes to other tables, interleave
// freely. That matches the serialization the league has always run under:
// per-file ordering, no cross-table isolation. Callers reading several
// tables may therefore observe them at different points in time; the league
// engine tolerates such snapshots by skipping orphaned records.
type Store struct {
	db     *sql.DB
	driver string

	teamsMu     sync.Mutex
	coursesMu   sync.Mutex
	scoresMu    sync.Mutex
	handicapsMu sync.Mutex
	scheduleMu  sync.Mutex
	teeTimesMu  sync.Mutex
}

// NewStore binds a store to an open connection. driver selects placeholder
// syntax ("sqlite" keeps ?, "postgres" rewrites to $N).
func NewStore(sqlDB *sql.DB, driver string) *Store {
	return &Store{db: sqlDB, driver: driver}
}

// bind rewrites ? placeholders for the active driver.
func (s *Store) bind(query string) string {
	if s.driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// nextID allocates the next id for a table the way the original flat-file
// store did: max(id)+1 under the table's write lock. Works identically on
// both backends and keeps imported historical ids stable.
func (s *Store) nextID(ctx context.Context, table string) (int64, error) {
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM "+table)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
