// Package sqlstore implements the domain repositories on a SQL database.
// The same queries run on sqlite (modernc.org/sqlite or mattn/go-sqlite3)
// and on postgres (lib/pq); placeholders are rebound per driver by sqlx.
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type Store struct {
	db *sqlx.DB
}

var _ domain.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects with the given database/sql driver name and checks the
// connection.
func Open(ctx context.Context, driverName, dsn string) (*Store, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return New(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) isPostgres() bool {
	return s.db.DriverName() == "postgres"
}

func (s *Store) identityColumn() string {
	if s.isPostgres() {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// InitSchema creates the tables if they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	id := s.identityColumn()
	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS workouts (
			workout_id %s,
			trainer_id TEXT NOT NULL,
			trainee_id TEXT NOT NULL,
			workout_name TEXT NOT NULL,
			reps INTEGER NOT NULL,
			sets INTEGER NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			date_assigned TEXT NOT NULL,
			date_completed TEXT,
			trainer_id_numeric INTEGER NOT NULL DEFAULT 0,
			trainee_id_numeric INTEGER NOT NULL DEFAULT 0
		)`, id),
		`CREATE INDEX IF NOT EXISTS idx_workouts_trainee ON workouts (trainee_id)`,
		`
		CREATE TABLE IF NOT EXISTS progress (
			trainee_id TEXT PRIMARY KEY,
			progress_value INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1
		)`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS badges (
			badge_id %s,
			trainee_id TEXT NOT NULL,
			badge_name TEXT NOT NULL
		)`, id),
		`CREATE INDEX IF NOT EXISTS idx_badges_trainee ON badges (trainee_id)`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS messages (
			message_id %s,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			body TEXT NOT NULL
		)`, id),
		`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (sender_id, receiver_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
