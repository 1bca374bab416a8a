// Package sqlite provides the SQLite-backed submission store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"onboard-project/internal/domain"
)

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// ErrNotFound is returned when no submission exists for the given id.
var ErrNotFound = errors.New("submission not found")

type Store struct {
	sqlDB *sql.DB
}

// StoredSubmission is a persisted record plus its assigned identity.
type StoredSubmission struct {
	ID        string
	Record    domain.Submission
	CreatedAt time.Time
}

// Open opens the submission store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PersistSubmission stores the record and returns its assigned identifier.
// Every call creates an independent row; submission is not idempotent.
func (s *Store) PersistSubmission(ctx context.Context, record domain.Submission) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO submissions (email, payload, created_at) VALUES (?, ?, ?)`,
		record.Email, string(payload), time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("submission id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *Store) GetSubmission(ctx context.Context, id string) (StoredSubmission, error) {
	if err := ctx.Err(); err != nil {
		return StoredSubmission{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, payload, created_at FROM submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

func (s *Store) ListSubmissions(ctx context.Context) ([]StoredSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, payload, created_at FROM submissions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []StoredSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (StoredSubmission, error) {
	var (
		id        int64
		payload   string
		createdAt string
	)
	if err := row.Scan(&id, &payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredSubmission{}, ErrNotFound
		}
		return StoredSubmission{}, fmt.Errorf("scan submission: %w", err)
	}
	var record domain.Submission
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return StoredSubmission{}, fmt.Errorf("decode submission %d: %w", id, err)
	}
	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return StoredSubmission{}, fmt.Errorf("parse created_at for %d: %w", id, err)
	}
	return StoredSubmission{
		ID:        strconv.FormatInt(id, 10),
		Record:    record,
		CreatedAt: ts,
	}, nil
}
