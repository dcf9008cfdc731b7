// Package history persists solve results in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/leapsolve/pkg/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeFormat is fixed-width so created_at sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded solve.
type Entry struct {
	ID         string         `json:"id"`
	Input      string         `json:"input"`
	Success    bool           `json:"success"`
	Strategy   core.Strategy  `json:"strategy,omitempty"`
	Expression string         `json:"expression,omitempty"`
	Result     *float64       `json:"result,omitempty"` // nil when failed or not finite
	ResultText string         `json:"result_text,omitempty"`
	Unit       string         `json:"unit,omitempty"`
	Kind       core.ErrorKind `json:"kind,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Store records and lists solves.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for a throwaway database.
func Open(path string, logger *slog.Logger) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := NewWithDB(db, logger)
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection without migrating it.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Migrate applies pending migrations.
func (s *Store) Migrate() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Record stores the outcome of solving input.
func (s *Store) Record(ctx context.Context, input string, res core.SolveResult) (*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	e := &Entry{
		ID:         uuid.New().String(),
		Input:      input,
		Success:    res.Success,
		Strategy:   res.Strategy,
		Expression: res.Expression,
		Unit:       res.Unit,
		Kind:       res.Kind,
		Reason:     res.Reason,
		CreatedAt:  s.now(),
	}
	if res.Success {
		e.ResultText = core.FormatNumber(res.Result)
		if !math.IsNaN(res.Result) && !math.IsInf(res.Result, 0) {
			v := res.Result
			e.Result = &v
		}
	}

	var result sql.NullFloat64
	if e.Result != nil {
		result = sql.NullFloat64{Float64: *e.Result, Valid: true}
	}

	s.logger.Debug("recording solve", slog.String("id", e.ID), slog.Bool("success", e.Success))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solves (id, input, strategy, expression, result, result_text, unit, success, kind, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Input, string(e.Strategy), e.Expression, result, e.ResultText, e.Unit,
		e.Success, string(e.Kind), e.Reason, e.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record solve: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns
// everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, strategy, expression, result, result_text, unit, success, kind, reason, created_at
		 FROM solves ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			strategy  string
			kind      string
			result    sql.NullFloat64
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Input, &strategy, &e.Expression, &result, &e.ResultText,
			&e.Unit, &e.Success, &kind, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Strategy = core.Strategy(strategy)
		e.Kind = core.ErrorKind(kind)
		if result.Valid {
			v := result.Float64
			e.Result = &v
		}
		if e.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("entry %s: bad created_at %q: %w", e.ID, createdAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM solves`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	s.logger.Debug("cleared history", slog.Int64("deleted", n))
	return n, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
