package audit

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/vault-thirteen/errorz"
)

// Store keeps blocked override attempts for security monitoring.
//
// Implementations must be thread-safe!
type Store interface {
	// Record stores the attempt.
	Record(Attempt) error
	// Recent returns at most limit attempts, newest first.
	Recent(limit int) ([]Attempt, error)
	// Count returns the number of stored attempts.
	Count() (int, error)
}

var ErrInvalidLimit = errors.New("limit must be positive")

// memoryDSN is the shared in-memory database used when no file name is given.
const memoryDSN = "file::memory:?cache=shared"

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore opens (or creates) the attempt database in the given file.
// If the file name is empty or "memory", a shared in-memory db is opened.
func NewSQLiteStore(filename string) (*SQLiteStore, error) {
	if filename == "" || filename == "memory" {
		filename = memoryDSN
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, fmt.Errorf("open attempt db: %w", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			at INTEGER,
			header TEXT,
			value TEXT,
			ip TEXT,
			uri TEXT
		)`,
		"CREATE INDEX IF NOT EXISTS at_idx ON attempts (at)",
		"PRAGMA journal_mode=WAL",
	} {
		if _, err := db.Exec(stmt); err != nil {
			err = fmt.Errorf("init attempt db: %w", err)
			if cerr := db.Close(); cerr != nil {
				err = errorz.Combine(err, cerr)
			}
			return nil, err
		}
	}
	return &SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

func (s *SQLiteStore) Record(a Attempt) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO attempts
		(id, at, header, value, ip, uri) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Time.UnixNano(), a.Header, a.Value, a.IP, a.URI)
	return err
}

func (s *SQLiteStore) Recent(limit int) ([]Attempt, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	attempts := make([]Attempt, 0)
	rows, err := s.db.Query(`SELECT
		id, at, header, value, ip, uri
		FROM attempts ORDER BY at DESC LIMIT ?`, limit)
	if err != nil {
		return attempts, err
	}
	defer rows.Close()
	for rows.Next() {
		var a Attempt
		var at int64
		if err := rows.Scan(&a.ID, &at, &a.Header, &a.Value, &a.IP, &a.URI); err != nil {
			return attempts, err
		}
		a.Time = time.Unix(0, at).UTC()
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *SQLiteStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM attempts").Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemStore keeps the most recent attempts in memory.
type MemStore struct {
	mutex    *sync.RWMutex
	attempts []Attempt
	capacity int
}

// NewMemStore returns a store holding at most capacity attempts.
// Older attempts are dropped first.
func NewMemStore(capacity int) *MemStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemStore{
		mutex:    &sync.RWMutex{},
		attempts: make([]Attempt, 0),
		capacity: capacity,
	}
}

func (m *MemStore) Record(a Attempt) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.attempts = append(m.attempts, a)
	if len(m.attempts) > m.capacity {
		m.attempts = append([]Attempt(nil), m.attempts[len(m.attempts)-m.capacity:]...)
	}
	return nil
}

func (m *MemStore) Recent(limit int) ([]Attempt, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	n := len(m.attempts)
	if limit < n {
		n = limit
	}
	recent := make([]Attempt, 0, n)
	for i := len(m.attempts) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, m.attempts[i])
	}
	return recent, nil
}

func (m *MemStore) Count() (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.attempts), nil
}
