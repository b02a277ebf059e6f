package feedback

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/pkg/filesystem"
	"github.com/doeshing/nlsh-go/internal/ports"
)

// SQLiteStore persists feedback entries and learned mappings in SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.nlsh/feedback/feedback.db database.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.StateDir(), "feedback", "feedback.db")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		// fallback to file store
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		input TEXT,
		generated TEXT,
		corrected TEXT,
		was_correct INTEGER
	);
	CREATE TABLE IF NOT EXISTS mappings (
		input TEXT PRIMARY KEY,
		command TEXT
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	dir := filepath.Dir(s.path)
	return &FileStore{
		path:         filepath.Join(dir, "feedback.jsonl"),
		mappingsPath: filepath.Join(dir, "mappings.json"),
	}
}

// Append inserts a new feedback entry.
func (s *SQLiteStore) Append(entry domain.FeedbackEntry) error {
	if s.db == nil {
		return s.fallback().Append(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO feedback
		(timestamp, input, generated, corrected, was_correct)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339),
		entry.Input,
		entry.GeneratedCommand,
		entry.CorrectedCommand,
		boolToInt(entry.WasCorrect),
	)
	return err
}

// Entries returns all feedback entries in insertion order.
func (s *SQLiteStore) Entries() ([]domain.FeedbackEntry, error) {
	if s.db == nil {
		return s.fallback().Entries()
	}
	rows, err := s.db.Query(`SELECT timestamp, input, generated, corrected, was_correct
		FROM feedback ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.FeedbackEntry
	for rows.Next() {
		var entry domain.FeedbackEntry
		var ts string
		var correct int
		if err := rows.Scan(&ts, &entry.Input, &entry.GeneratedCommand, &entry.CorrectedCommand, &correct); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Timestamp = t
		}
		entry.WasCorrect = correct == 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveMappings replaces the learned mappings table.
func (s *SQLiteStore) SaveMappings(mappings map[string]string) error {
	if s.db == nil {
		return s.fallback().SaveMappings(mappings)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM mappings"); err != nil {
		tx.Rollback()
		return err
	}
	for input, command := range mappings {
		if _, err := tx.Exec("INSERT INTO mappings (input, command) VALUES (?, ?)", input, command); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadMappings reads the learned mappings table.
func (s *SQLiteStore) LoadMappings() (map[string]string, error) {
	if s.db == nil {
		return s.fallback().LoadMappings()
	}
	rows, err := s.db.Query("SELECT input, command FROM mappings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	mappings := make(map[string]string)
	for rows.Next() {
		var input, command string
		if err := rows.Scan(&input, &command); err != nil {
			return nil, err
		}
		mappings[input] = command
	}
	return mappings, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.FeedbackRepository = (*SQLiteStore)(nil)
