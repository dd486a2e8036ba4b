// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — works everywhere Go works, and lets tests run against
// ":memory:" databases with zero setup.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The server owns one DB and closes it on
// shutdown; Users() and Exercises() hand out typed views over the same pool.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for a throwaway in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces a real connection now, so a bad path or permissions issue
	// surfaces at startup instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets concurrent reads proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository view of this database.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// Exercises returns the exercise repository view of this database.
func (db *DB) Exercises() *ExerciseDB {
	return &ExerciseDB{conn: db.conn}
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup.
//
// exercises.user_id has no FOREIGN KEY on purpose: the add-exercise flow
// saves the exercise first, then verifies the user and deletes the row if
// the user is missing. A schema-level constraint would reject the insert
// before that compensating step ever runs.
//
// exercises.date is TEXT holding an RFC 3339 UTC timestamp. With a fixed
// layout and a single zone, string comparison equals chronological
// comparison, so range filters and ORDER BY work directly in SQL.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL UNIQUE CHECK (length(username) > 0),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS exercises (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			description TEXT NOT NULL CHECK (length(description) > 0),
			duration    INTEGER NOT NULL CHECK (duration >= 0),
			date        TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises(user_id, date);
	`)
	if err != nil {
		return fmt.Errorf("creating exercises table: %w", err)
	}

	return nil
}
