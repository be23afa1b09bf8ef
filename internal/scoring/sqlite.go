package scoring

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"flipmind/internal/deck"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS best_scores (
	difficulty TEXT PRIMARY KEY,
	score      INTEGER NOT NULL CHECK (score >= 0)
);`

// SQLiteStorage is a BestScoreStore backed by a SQLite database file.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLiteStorage opens (and creates if missing) the database at path and
// ensures the schema exists.
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create best_scores: %w", err)
	}

	log.Debug().Str("path", path).Msg("opened sqlite score store")
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Get(d deck.Difficulty) (int, bool, error) {
	var score int
	err := s.db.QueryRow(`SELECT score FROM best_scores WHERE difficulty = ?`, d.String()).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query best score for %s: %w", d, err)
	}
	return score, true, nil
}

func (s *SQLiteStorage) Set(d deck.Difficulty, score int) error {
	_, err := s.db.Exec(`
		INSERT INTO best_scores (difficulty, score) VALUES (?, ?)
		ON CONFLICT(difficulty) DO UPDATE SET score = excluded.score`,
		d.String(), score,
	)
	if err != nil {
		return fmt.Errorf("save best score for %s: %w", d, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
