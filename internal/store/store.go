// Package store provides SQLite persistence for gutlog.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/logging"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex;
// score-history upserts are read-modify-write under the write lock, so two
// writers on the same day key cannot lose an update.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
// Movement timestamps are stored as epoch milliseconds so the day-window
// queries stay integer comparisons.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS movements (
		id TEXT PRIMARY KEY,
		occurred_at INTEGER NOT NULL,
		bristol INTEGER NOT NULL,
		blood INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_movements_occurred ON movements(occurred_at);

	CREATE TABLE IF NOT EXISTS surveys (
		day TEXT PRIMARY KEY,
		incontinence TEXT NOT NULL,
		pain TEXT NOT NULL,
		general_state TEXT NOT NULL,
		antidiarrheal TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS score_history (
		day TEXT PRIMARY KEY,
		score INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		content TEXT NOT NULL,
		tags TEXT,
		shared_with_doctor INTEGER DEFAULT 0,
		category TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_notes_day ON notes(day);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveMovement inserts a movement, or replaces the row when the id already
// exists (edits rewrite every field). A missing ID is minted here.
// Thread-safe: acquires write lock.
func (s *Store) SaveMovement(m journal.Movement) (journal.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	_, err := s.db.Exec(`
		INSERT INTO movements (id, occurred_at, bristol, blood)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			occurred_at = excluded.occurred_at,
			bristol = excluded.bristol,
			blood = excluded.blood
	`, m.ID, m.OccurredAt.UnixMilli(), m.Bristol, boolToInt(m.Blood))
	if err != nil {
		return m, fmt.Errorf("save movement: %w", err)
	}
	return m, nil
}

// DeleteMovement removes a movement by id. Deleting an unknown id is a no-op.
// Thread-safe: acquires write lock.
func (s *Store) DeleteMovement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM movements WHERE id = ?", id)
	return err
}

// MovementByID retrieves a single movement, or nil when absent.
// Thread-safe: acquires read lock.
func (s *Store) MovementByID(id string) (*journal.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, occurred_at, bristol, blood FROM movements WHERE id = ?
	`, id)

	m, err := scanMovement(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Movements retrieves all movements ordered by time ascending.
// Thread-safe: acquires read lock.
func (s *Store) Movements() ([]journal.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMovements(`
		SELECT id, occurred_at, bristol, blood FROM movements ORDER BY occurred_at
	`)
}

// MovementsOn retrieves the movements whose timestamp falls within the local
// [midnight, next midnight) window of the given day key.
// Thread-safe: acquires read lock.
func (s *Store) MovementsOn(day string) ([]journal.Movement, error) {
	start, end, err := journal.DayBounds(day)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMovements(`
		SELECT id, occurred_at, bristol, blood FROM movements
		WHERE occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at
	`, start.UnixMilli(), end.UnixMilli())
}

// SaveSurvey upserts the survey for its day key; the last write for a day wins.
// Thread-safe: acquires write lock.
func (s *Store) SaveSurvey(sv journal.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO surveys (day, incontinence, pain, general_state, antidiarrheal)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			incontinence = excluded.incontinence,
			pain = excluded.pain,
			general_state = excluded.general_state,
			antidiarrheal = excluded.antidiarrheal
	`, sv.Day, string(sv.Incontinence), string(sv.Pain), string(sv.State), string(sv.Antidiarrheal))
	if err != nil {
		return fmt.Errorf("save survey: %w", err)
	}
	return nil
}

// Survey retrieves the survey for a day, or nil when none was submitted.
// Thread-safe: acquires read lock.
func (s *Store) Survey(day string) (*journal.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sv journal.Survey
	var incontinence, pain, state, antidiarrheal string
	err := s.db.QueryRow(`
		SELECT day, incontinence, pain, general_state, antidiarrheal
		FROM surveys WHERE day = ?
	`, day).Scan(&sv.Day, &incontinence, &pain, &state, &antidiarrheal)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sv.Incontinence = journal.YesNo(incontinence)
	sv.Pain = journal.PainLevel(pain)
	sv.State = journal.GeneralState(state)
	sv.Antidiarrheal = journal.YesNo(antidiarrheal)
	return &sv, nil
}

// Surveys retrieves every submitted survey keyed by day, as a snapshot for
// series building.
// Thread-safe: acquires read lock.
func (s *Store) Surveys() (map[string]journal.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT day, incontinence, pain, general_state, antidiarrheal FROM surveys
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := make(map[string]journal.Survey)
	for rows.Next() {
		var sv journal.Survey
		var incontinence, pain, state, antidiarrheal string
		if err := rows.Scan(&sv.Day, &incontinence, &pain, &state, &antidiarrheal); err != nil {
			return nil, err
		}
		sv.Incontinence = journal.YesNo(incontinence)
		sv.Pain = journal.PainLevel(pain)
		sv.State = journal.GeneralState(state)
		sv.Antidiarrheal = journal.YesNo(antidiarrheal)
		surveys[sv.Day] = sv
	}
	return surveys, rows.Err()
}

// ScoreHistory retrieves all persisted daily scores, most recent first.
// Thread-safe: acquires read lock.
func (s *Store) ScoreHistory() ([]journal.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT day, score FROM score_history ORDER BY day DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []journal.ScoreEntry
	for rows.Next() {
		var e journal.ScoreEntry
		if err := rows.Scan(&e.Day, &e.Score); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ScoreFor retrieves the persisted score for a day.
// ok is false when no entry exists.
// Thread-safe: acquires read lock.
func (s *Store) ScoreFor(day string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var score int
	err := s.db.QueryRow("SELECT score FROM score_history WHERE day = ?", day).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

// UpsertScore replaces the history entry for a day, inserting if absent.
// Thread-safe: acquires write lock.
func (s *Store) UpsertScore(day string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO score_history (day, score, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(day) DO UPDATE SET
			score = excluded.score,
			updated_at = CURRENT_TIMESTAMP
	`, day, score)
	return err
}

// DeleteScore removes the history entry for a day, if any.
// Thread-safe: acquires write lock.
func (s *Store) DeleteScore(day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM score_history WHERE day = ?", day)
	return err
}

// SaveNote inserts a note, minting an ID when absent. Tags are stored as a
// JSON array.
// Thread-safe: acquires write lock.
func (s *Store) SaveNote(n journal.Note) (journal.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return n, fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO notes (id, day, created_at, content, tags, shared_with_doctor, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			content = excluded.content,
			tags = excluded.tags,
			shared_with_doctor = excluded.shared_with_doctor,
			category = excluded.category
	`, n.ID, n.Day, n.CreatedAt.UnixMilli(), n.Content, string(tags),
		boolToInt(n.SharedWithDoctor), n.Category)
	if err != nil {
		return n, fmt.Errorf("save note: %w", err)
	}
	return n, nil
}

// Notes retrieves all notes ordered by creation time ascending.
// A row with corrupt tags JSON degrades to an untagged note rather than
// failing the whole read.
// Thread-safe: acquires read lock.
func (s *Store) Notes() ([]journal.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, day, created_at, content, tags, shared_with_doctor, category
		FROM notes ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []journal.Note
	for rows.Next() {
		var n journal.Note
		var createdMs int64
		var tags sql.NullString
		var category sql.NullString
		var shared int
		if err := rows.Scan(&n.ID, &n.Day, &createdMs, &n.Content, &tags, &shared, &category); err != nil {
			return nil, err
		}
		n.CreatedAt = time.UnixMilli(createdMs)
		n.SharedWithDoctor = shared != 0
		n.Category = category.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &n.Tags); err != nil {
				logging.Warn("Corrupt tags on note, treating as untagged", "id", n.ID, "error", err)
				n.Tags = nil
			}
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// queryMovements is a helper that executes a query and scans results.
// Caller must hold s.mu (read lock is sufficient).
func (s *Store) queryMovements(query string, args ...any) ([]journal.Movement, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []journal.Movement
	for rows.Next() {
		m, err := scanMovement(rows.Scan)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// scanMovement scans one movement row via the given scan function.
func scanMovement(scan func(...any) error) (journal.Movement, error) {
	var m journal.Movement
	var occurredMs int64
	var blood int
	if err := scan(&m.ID, &occurredMs, &m.Bristol, &blood); err != nil {
		return m, err
	}
	m.OccurredAt = time.UnixMilli(occurredMs)
	m.Blood = blood != 0
	return m, nil
}

// boolToInt converts a bool to an int for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
