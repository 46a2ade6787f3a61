// Package storage provides SQLite-based persistence for solo scores and
// match results, plus the genome and legacy CSV files.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/versus"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// SoloScore is one finished solo game.
type SoloScore struct {
	ID        int64
	Name      string
	Score     int
	Speed     int
	Level     int
	Lines     int
	CreatedAt time.Time
}

// MatchEntry is one board of a finished match.
type MatchEntry struct {
	ID        int64
	MatchID   string
	Name      string
	Score     int
	IsCPU     bool
	Winner    bool
	CPUMatch  bool // The match had at least one CPU board
	CreatedAt time.Time
}

// RankedScore is a leaderboard line: the best score of one name.
type RankedScore struct {
	Rank  int
	Name  string
	Score int
	IsCPU bool
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
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
		CREATE TABLE IF NOT EXISTS solo_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			speed INTEGER NOT NULL DEFAULT 3,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solo_scores_top ON solo_scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_solo_scores_name ON solo_scores(name);

		CREATE TABLE IF NOT EXISTS match_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			is_cpu INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0,
			cpu_match INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_match ON match_results(match_id);
		CREATE INDEX IF NOT EXISTS idx_match_results_name ON match_results(cpu_match, name);
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

// parseTime reads a created_at column, which the driver may hand back as
// either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

// SaveSolo records a finished solo game under its sanitised name.
// Returns the ID of the inserted record.
func (s *Store) SaveSolo(e SoloScore) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO solo_scores (name, score, speed, level, lines, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		SafeName(e.Name), e.Score, e.Speed, e.Level, e.Lines, timestamp(e.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopSolo returns the best score of each name, highest first.
func (s *Store) TopSolo(limit int) ([]RankedScore, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT name, MAX(score) AS best
		 FROM solo_scores
		 GROUP BY name
		 ORDER BY best DESC, name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var ranked []RankedScore
	for rows.Next() {
		r := RankedScore{Rank: len(ranked) + 1}
		if err := rows.Scan(&r.Name, &r.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ranked = append(ranked, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ranked, nil
}

// RecentSolo returns the latest solo games, newest first.
func (s *Store) RecentSolo(limit int) ([]SoloScore, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, speed, level, lines, created_at
		 FROM solo_scores
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []SoloScore
	for rows.Next() {
		var e SoloScore
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Speed, &e.Level, &e.Lines, &createdAt); err != nil {
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

// HighScore returns the highest solo score.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM solo_scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearSolo deletes all solo scores.
func (s *Store) ClearSolo() error {
	if _, err := s.db.Exec("DELETE FROM solo_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveMatch records every board of one match in a single transaction.
func (s *Store) SaveMatch(entries []MatchEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT INTO match_results (match_id, name, score, is_cpu, winner, cpu_match, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.MatchID, SafeName(e.Name), e.Score, e.IsCPU, e.Winner, e.CPUMatch, timestamp(e.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save match result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

// SaveMatchResult implements versus.ResultSaver.
func (s *Store) SaveMatchResult(r versus.MatchResult) error {
	cpuMatch := r.HasCPU()
	now := time.Now()
	entries := make([]MatchEntry, 0, len(r.Boards))
	for _, b := range r.Boards {
		entries = append(entries, MatchEntry{
			MatchID:   r.MatchID,
			Name:      b.Name,
			Score:     b.Score,
			IsCPU:     b.IsCPU,
			Winner:    b.Winner,
			CPUMatch:  cpuMatch,
			CreatedAt: now,
		})
	}
	return s.SaveMatch(entries)
}

// Ensure Store implements ResultSaver
var _ versus.ResultSaver = (*Store)(nil)

// MatchRankings returns the best match score of each name. cpuMatches
// selects the leaderboard of matches with CPU boards or the human-only one.
func (s *Store) MatchRankings(cpuMatches bool, limit int) ([]RankedScore, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT name, MAX(score) AS best, MAX(is_cpu)
		 FROM match_results
		 WHERE cpu_match = ?
		 GROUP BY name
		 ORDER BY best DESC, name ASC
		 LIMIT ?`,
		cpuMatches, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rankings: %w", err)
	}
	defer rows.Close()

	var ranked []RankedScore
	for rows.Next() {
		r := RankedScore{Rank: len(ranked) + 1}
		if err := rows.Scan(&r.Name, &r.Score, &r.IsCPU); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ranked = append(ranked, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ranked, nil
}

// RecentMatches returns the latest match rows, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, name, score, is_cpu, winner, cpu_match, created_at
		 FROM match_results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var entries []MatchEntry
	for rows.Next() {
		var e MatchEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Name, &e.Score, &e.IsCPU, &e.Winner, &e.CPUMatch, &createdAt); err != nil {
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

// SoloStats contains aggregated statistics over all solo games.
type SoloStats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// GetSoloStats aggregates every solo game.
func (s *Store) GetSoloStats() (*SoloStats, error) {
	stats := &SoloStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), MAX(created_at)
		 FROM solo_scores`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get solo stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}
