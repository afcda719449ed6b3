package database

import (
	"context"
	"database/sql"
	"sync"

	apperrors "github.com/allisson/soulbound/internal/errors"
)

// Sequence names backed by the sequences table.
const (
	SequenceTemplateID   = "template_id"
	SequenceTokenID      = "token_id"
	SequenceSessionNonce = "session_nonce"
)

// Sequence allocates monotonically increasing values per name. The first value returned
// for a name is 1. Allocations made inside a transaction are rolled back with it.
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}

// PostgreSQLSequence implements Sequence with UPDATE ... RETURNING.
type PostgreSQLSequence struct {
	db *sql.DB
}

// NewPostgreSQLSequence creates a new PostgreSQLSequence.
func NewPostgreSQLSequence(db *sql.DB) *PostgreSQLSequence {
	return &PostgreSQLSequence{db: db}
}

// Next increments the named sequence and returns the new value.
func (s *PostgreSQLSequence) Next(ctx context.Context, name string) (int64, error) {
	querier := GetTx(ctx, s.db)

	var value int64
	query := `UPDATE sequences SET value = value + 1 WHERE name = $1 RETURNING value`
	if err := querier.QueryRowContext(ctx, query, name).Scan(&value); err != nil {
		return 0, apperrors.Wrap(err, "failed to advance sequence "+name)
	}
	return value, nil
}

// MySQLSequence implements Sequence with LAST_INSERT_ID(expr), which is scoped to the connection.
type MySQLSequence struct {
	db *sql.DB
}

// NewMySQLSequence creates a new MySQLSequence.
func NewMySQLSequence(db *sql.DB) *MySQLSequence {
	return &MySQLSequence{db: db}
}

type connQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Next increments the named sequence and returns the new value.
func (s *MySQLSequence) Next(ctx context.Context, name string) (int64, error) {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return s.next(ctx, tx, name)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to acquire connection")
	}
	defer func() {
		_ = conn.Close()
	}()

	return s.next(ctx, conn, name)
}

func (s *MySQLSequence) next(ctx context.Context, q connQuerier, name string) (int64, error) {
	query := `UPDATE sequences SET value = LAST_INSERT_ID(value + 1) WHERE name = ?`
	result, err := q.ExecContext(ctx, query, name)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to advance sequence "+name)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to advance sequence "+name)
	}
	if rows == 0 {
		return 0, apperrors.Wrap(sql.ErrNoRows, "failed to advance sequence "+name)
	}

	var value int64
	if err := q.QueryRowContext(ctx, `SELECT LAST_INSERT_ID()`).Scan(&value); err != nil {
		return 0, apperrors.Wrap(err, "failed to read sequence "+name)
	}
	return value, nil
}

// MemorySequence implements Sequence in memory and takes part in MemoryTxManager rollbacks.
type MemorySequence struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewMemorySequence creates a new MemorySequence.
func NewMemorySequence() *MemorySequence {
	return &MemorySequence{values: make(map[string]int64)}
}

// Next increments the named sequence and returns the new value.
func (s *MemorySequence) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name]++
	return s.values[name], nil
}

// Snapshot implements Snapshotter.
func (s *MemorySequence) Snapshot() func() {
	s.mu.Lock()
	saved := make(map[string]int64, len(s.values))
	for k, v := range s.values {
		saved[k] = v
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.values = saved
	}
}
