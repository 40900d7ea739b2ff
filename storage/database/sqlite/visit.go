package sqlitedb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"

	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
)

//go:embed schema.sql
var schema string

// VisitStore persists the visit log to a SQLite database so dashboard
// analytics survive restarts. WAL mode keeps reads concurrent with the
// write path, and a cron job prunes expired rows hourly in case no write
// happens for a while.
type VisitStore struct {
	db   *sql.DB
	cron *cron.Cron
}

// NewVisitStore opens (or creates) the visit log at dsn.
func NewVisitStore(dsn string) (*VisitStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: open: %w", err)
	}
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitedb: set WAL mode: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitedb: create schema: %w", err)
	}

	s := &VisitStore{db: db, cron: cron.New()}
	if _, err = s.cron.AddFunc("@hourly", func() { _ = s.Prune(time.Now().Add(-analytics.Retention)) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitedb: schedule prune: %w", err)
	}
	s.cron.Start()
	return s, nil
}

// AppendVisit stores the visit and drops rows older than pruneBefore.
func (s *VisitStore) AppendVisit(v analytics.Visit, pruneBefore time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlitedb: begin: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err = tx.Exec(
		`INSERT INTO visits (user_id, time) VALUES (?, ?)`,
		v.UserID, v.Timestamp.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("sqlitedb: append visit: %w", err)
	}
	if _, err = tx.Exec(
		`DELETE FROM visits WHERE time < ?`,
		pruneBefore.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("sqlitedb: prune visits: %w", err)
	}
	return tx.Commit()
}

// LastVisit returns the most recent visit time for the user.
func (s *VisitStore) LastVisit(userID string) (time.Time, bool, error) {
	var ts sql.NullString
	err := s.db.QueryRow(
		`SELECT MAX(time) FROM visits WHERE user_id = ?`, userID,
	).Scan(&ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sqlitedb: last visit: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ts.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sqlitedb: parse time %q: %w", ts.String, err)
	}
	return t, true, nil
}

// QueryVisitsSince returns visits at or after t, oldest first.
func (s *VisitStore) QueryVisitsSince(t time.Time) ([]analytics.Visit, error) {
	rows, err := s.db.Query(
		`SELECT user_id, time FROM visits WHERE time >= ? ORDER BY time ASC`,
		t.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: query visits: %w", err)
	}
	defer rows.Close()

	var visits []analytics.Visit
	for rows.Next() {
		var (
			v  analytics.Visit
			ts string
		)
		if err = rows.Scan(&v.UserID, &ts); err != nil {
			return nil, fmt.Errorf("sqlitedb: scan visit: %w", err)
		}
		if v.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("sqlitedb: parse time %q: %w", ts, err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Prune runs a single retention pass. Exported for testing.
func (s *VisitStore) Prune(before time.Time) error {
	_, err := s.db.Exec(
		`DELETE FROM visits WHERE time < ?`,
		before.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlitedb: prune: %w", err)
	}
	return nil
}

// Close stops the pruner and closes the database.
func (s *VisitStore) Close() error {
	ctx := s.cron.Stop()
	<-ctx.Done()
	return s.db.Close()
}

var _ analytics.Repository = (*VisitStore)(nil)
