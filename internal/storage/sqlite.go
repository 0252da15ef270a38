// Package storage provides SQLite-based persistence for session save
// states and high scores. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies, following the teacher's storage package.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrCorruptState is returned by LoadSession when a saved record fails
// validation (missing grid dimensions, bad color sentinel, a bomb cell
// with no timer): the engine never continues from partially-valid state.
var ErrCorruptState = errors.New("storage: corrupt saved state")

// Store manages the SQLite database connection for session and score
// persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record, keyed by combined
// mode id ("{game}_{match}").
type ScoreEntry struct {
	ID        int64
	ModeID    string
	Score     int
	CreatedAt time.Time
}

// SavedCell mirrors board.Cell in a form safe to round-trip through
// YAML independent of the board package's internal layout.
type SavedCell struct {
	Color     int `yaml:"color"`
	Special   int `yaml:"special"`
	BombTimer int `yaml:"bomb_timer"`
}

// SessionRecord is the persistent state layout: one record per combined
// mode id, holding everything needed to resume a session.
type SessionRecord struct {
	ID           string        `yaml:"id"`
	Grid         [][]SavedCell `yaml:"grid"`
	Cols         int           `yaml:"cols"`
	Rows         int           `yaml:"rows"`
	MoveCount    int           `yaml:"move_count"`
	Score        int           `yaml:"score"`
	DisplayScore int           `yaml:"display_score"`
	ChainLevel   int           `yaml:"chain_level"`
	ComboCount   int           `yaml:"combo_count"`
	RNGSeed      uint64        `yaml:"rng_seed"`
	ModeID       string        `yaml:"mode_id"`
	BombQueued   bool          `yaml:"bomb_queued"`
}

// validate checks the corrupt-state conditions: missing grid dimensions,
// a bad color sentinel, or a bomb cell with a non-positive timer.
func (r SessionRecord) validate() error {
	if r.Cols <= 0 || r.Rows <= 0 {
		return fmt.Errorf("%w: missing grid dimensions", ErrCorruptState)
	}
	if len(r.Grid) != r.Rows {
		return fmt.Errorf("%w: grid has %d rows, want %d", ErrCorruptState, len(r.Grid), r.Rows)
	}
	for _, row := range r.Grid {
		if len(row) != r.Cols {
			return fmt.Errorf("%w: grid row has %d cols, want %d", ErrCorruptState, len(row), r.Cols)
		}
		for _, cell := range row {
			if cell.Color < -2 {
				return fmt.Errorf("%w: bad color sentinel %d", ErrCorruptState, cell.Color)
			}
			const specialBomb = 3 // mirrors board.SpecialBomb's ordinal
			if cell.Special == specialBomb && cell.BombTimer <= 0 {
				return fmt.Errorf("%w: bomb cell with non-positive timer", ErrCorruptState)
			}
		}
	}
	return nil
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			mode_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode_id ON scores(mode_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode_id, score DESC);

		CREATE TABLE IF NOT EXISTS session_states (
			session_id TEXT NOT NULL,
			mode_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, mode_id)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSession upserts a session's full state, keyed by (session id, mode
// id).
func (s *Store) SaveSession(rec SessionRecord) error {
	payload, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: cannot encode session state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO session_states (session_id, mode_id, payload, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(session_id, mode_id) DO UPDATE SET payload=excluded.payload, updated_at=CURRENT_TIMESTAMP`,
		rec.ID, rec.ModeID, string(payload),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session state: %w", err)
	}
	return nil
}

// LoadSession retrieves a saved session, validating it against the
// corruption rules above. A nil, nil return means no saved record exists
// for that key — the caller should start a fresh session rather than
// treat it as an error.
func (s *Store) LoadSession(sessionID, modeID string) (*SessionRecord, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM session_states WHERE session_id = ? AND mode_id = ?`,
		sessionID, modeID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session state: %w", err)
	}

	var rec SessionRecord
	if err := yaml.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}

	return &rec, nil
}

// DeleteSession removes a saved session record, e.g. after GameOver.
func (s *Store) DeleteSession(sessionID, modeID string) error {
	_, err := s.db.Exec(
		`DELETE FROM session_states WHERE session_id = ? AND mode_id = ?`,
		sessionID, modeID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session state: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given combined mode id
// ("{game}_{match}"). Returns the ID of the inserted record.
func (s *Store) SaveScore(modeID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode_id, score) VALUES (?, ?)",
		modeID, score,
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

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(modeID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode_id, score, created_at
		 FROM scores
		 WHERE mode_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanScoreRows(rows)
}

// AllScores retrieves all scores for the given mode (no limit).
func (s *Store) AllScores(modeID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, mode_id, score, created_at
		 FROM scores
		 WHERE mode_id = ?
		 ORDER BY score DESC`,
		modeID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanScoreRows(rows)
}

func scanScoreRows(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ModeID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(modeID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode_id = ?",
		modeID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(modeID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode_id = ?", modeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a mode.
type GameStats struct {
	ModeID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetGameStats(modeID string) (*GameStats, error) {
	stats := &GameStats{ModeID: modeID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE mode_id = ?`,
		modeID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE mode_id = ? ORDER BY created_at DESC LIMIT 1`,
		modeID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		switch v := lastPlayed.(type) {
		case time.Time:
			stats.LastPlayed = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				stats.LastPlayed = parsed
			}
		}
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for every mode that has been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT mode_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY mode_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.ModeID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		switch v := lastPlayed.(type) {
		case time.Time:
			st.LastPlayed = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				st.LastPlayed = parsed
			}
		}

		stats[st.ModeID] = &st
	}

	return stats, nil
}
