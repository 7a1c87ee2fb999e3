// Package storage provides SQLite-based persistence for the high-score table.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MaxEntries is the size of the ranking kept per maze.
const MaxEntries = 10

// MaxNameLen bounds stored player names, in runes.
const MaxNameLen = 16

// DefaultName is stored when a player leaves the name empty.
const DefaultName = "Player"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single ranked record.
type ScoreEntry struct {
	ID        int64
	MazeID    string
	Name      string
	Score     int
	Level     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			maze_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(maze_id, score DESC, id ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NormalizeName trims a player name, caps its length and substitutes
// DefaultName for an empty one.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	return name
}

// SaveScore records a finished game and trims the maze's ranking back to
// MaxEntries. Ties keep the older entry. ranked reports whether the new
// record survived the trim.
func (s *Store) SaveScore(mazeID, name string, score, level int) (id int64, ranked bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"INSERT INTO scores (maze_id, name, score, level) VALUES (?, ?, ?, ?)",
		mazeID, NormalizeName(name), score, level,
	)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM scores
		 WHERE maze_id = ? AND id NOT IN (
		     SELECT id FROM scores WHERE maze_id = ?
		     ORDER BY score DESC, id ASC
		     LIMIT ?
		 )`,
		mazeID, mazeID, MaxEntries,
	)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot trim ranking: %w", err)
	}

	var kept int
	if err := tx.QueryRow("SELECT COUNT(*) FROM scores WHERE id = ?", id).Scan(&kept); err != nil {
		return 0, false, fmt.Errorf("storage: cannot check ranking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return id, kept == 1, nil
}

// TopScores retrieves the top N scores for the given maze.
// Results are ordered by score descending, older entries first on ties.
func (s *Store) TopScores(mazeID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}

	rows, err := s.db.Query(
		`SELECT id, maze_id, name, score, level, created_at
		 FROM scores
		 WHERE maze_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mazeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.MazeID, &e.Name, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given maze.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mazeID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE maze_id = ?",
		mazeID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// IsHighScore reports whether score would enter the maze's ranking: the
// table has room, or score beats the lowest ranked entry.
func (s *Store) IsHighScore(mazeID string, score int) (bool, error) {
	var lowest int
	err := s.db.QueryRow(
		`SELECT score FROM scores WHERE maze_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1 OFFSET ?`,
		mazeID, MaxEntries-1,
	).Scan(&lowest)

	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query ranking: %w", err)
	}
	return score > lowest, nil
}

// Rank returns the 1-based position score would take in the ranking, or
// 0 when it would not be ranked.
func (s *Store) Rank(mazeID string, score int) (int, error) {
	var better int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM scores WHERE maze_id = ? AND score >= ?",
		mazeID, score,
	).Scan(&better)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	if better >= MaxEntries {
		return 0, nil
	}
	return better + 1, nil
}

// ClearScores deletes all scores for the given maze.
func (s *Store) ClearScores(mazeID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE maze_id = ?", mazeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// MazeStats contains aggregated statistics over a maze's ranking.
type MazeStats struct {
	MazeID     string
	Entries    int
	HighScore  int
	AvgScore   float64
	BestLevel  int
	LastPlayed time.Time
}

// Stats retrieves statistics for every maze that has ranked entries,
// keyed by maze ID.
func (s *Store) Stats() (map[string]*MazeStats, error) {
	rows, err := s.db.Query(
		`SELECT maze_id, COUNT(*), MAX(score), AVG(score), MAX(level), MAX(created_at)
		 FROM scores
		 GROUP BY maze_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MazeStats)
	for rows.Next() {
		var st MazeStats
		var lastPlayed any
		if err := rows.Scan(&st.MazeID, &st.Entries, &st.HighScore, &st.AvgScore, &st.BestLevel, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.MazeID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
