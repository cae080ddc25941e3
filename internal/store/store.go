// Package store provides the embedded SQLite database used by SchoolDB.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nsqlite/schooldb/internal/log"
)

// Config represents the configuration for a Store instance.
type Config struct {
	// Logger is the shared SchoolDB logger.
	Logger log.Logger
	// Path is the SQLite database file.
	Path string
	// Recreate deletes the database file before opening it. This is
	// destructive and happens without confirmation.
	Recreate bool
	// BusyTimeout is how long SQLite waits on a locked database. Zero means
	// five seconds.
	BusyTimeout time.Duration
}

// Store is a single connection to the SQLite database with the run
// transaction on top of it.
type Store struct {
	Config
	conn *sql.DB
	tx   *sql.Tx
}

// WriteResult represents the result of a write statement.
type WriteResult struct {
	LastInsertID int64
	RowsAffected int64
}

// ReadResult represents the fully fetched result of a read statement.
type ReadResult struct {
	Columns []string
	Types   []string
	Values  [][]any
}

func createDSN(dbPath string, busyTimeout time.Duration) string {
	qp := url.Values{}
	qp.Add("_foreign_keys", "true")
	qp.Add("_busy_timeout", fmt.Sprintf("%d", busyTimeout.Milliseconds()))

	return fmt.Sprintf("file:%s?%s", dbPath, qp.Encode())
}

// removeDatabaseFiles deletes the database file and its rollback journal. A
// missing file is not an error.
func removeDatabaseFiles(dbPath string) error {
	for _, p := range []string{dbPath, dbPath + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// Open opens the database, optionally recreating it, and begins the run
// transaction. Foreign key enforcement is enabled on the connection.
func Open(ctx context.Context, config Config) (*Store, error) {
	if !config.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if config.Path == "" {
		return nil, errors.New("database path is required")
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5 * time.Second
	}

	if config.Recreate {
		if err := removeDatabaseFiles(config.Path); err != nil {
			return nil, err
		}
		config.Logger.InfoNs("store", "removed previous database", log.KV{
			"path": config.Path,
		})
	}

	conn, err := sql.Open("sqlite3", createDSN(config.Path, config.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetConnMaxIdleTime(0)
	conn.SetConnMaxLifetime(0)
	conn.SetMaxIdleConns(1)
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	config.Logger.DebugNs("store", "database opened", log.KV{"path": config.Path})

	return &Store{
		Config: config,
		conn:   conn,
		tx:     tx,
	}, nil
}

// execer is the subset shared by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// target returns the run transaction while it is open, the connection
// otherwise.
func (s *Store) target() execer {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

// InTransaction reports whether the run transaction is still open.
func (s *Store) InTransaction() bool {
	return s.tx != nil
}

// Exec executes a single write statement.
func (s *Store) Exec(
	ctx context.Context, query string, params ...any,
) (WriteResult, error) {
	res, err := s.target().ExecContext(ctx, query, params...)
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to execute write query: %w", err)
	}
	return toWriteResult(res)
}

// ExecScript executes a script of one or more statements without parameters.
func (s *Store) ExecScript(ctx context.Context, script string) error {
	if _, err := s.target().ExecContext(ctx, script); err != nil {
		return fmt.Errorf("failed to execute script: %w", err)
	}
	return nil
}

// ExecMany prepares query once and executes it for every parameter row.
// RowsAffected is the sum over all rows and LastInsertID the one of the last
// row.
func (s *Store) ExecMany(
	ctx context.Context, query string, rows [][]any,
) (WriteResult, error) {
	stmt, err := s.target().PrepareContext(ctx, query)
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	total := WriteResult{}
	for i, params := range rows {
		res, err := stmt.ExecContext(ctx, params...)
		if err != nil {
			return WriteResult{}, fmt.Errorf("failed to execute row %d: %w", i, err)
		}
		wr, err := toWriteResult(res)
		if err != nil {
			return WriteResult{}, err
		}
		total.RowsAffected += wr.RowsAffected
		total.LastInsertID = wr.LastInsertID
	}

	return total, nil
}

// Query executes a read statement and fetches every row.
func (s *Store) Query(
	ctx context.Context, query string, params ...any,
) (ReadResult, error) {
	rows, err := s.target().QueryContext(ctx, query, params...)
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to execute read query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to get columns: %w", err)
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to get column types: %w", err)
	}
	types := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		types[i] = ct.DatabaseTypeName()
	}

	values := [][]any{}
	for rows.Next() {
		row := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return ReadResult{}, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return ReadResult{}, fmt.Errorf("failed to read rows: %w", err)
	}

	return ReadResult{
		Columns: columns,
		Types:   types,
		Values:  values,
	}, nil
}

// Commit commits the run transaction. Later statements run in autocommit
// mode.
func (s *Store) Commit() error {
	if s.tx == nil {
		return errors.New("no transaction to commit")
	}
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.tx = nil
	s.Logger.DebugNs("store", "transaction committed")
	return nil
}

// Close rolls back the run transaction if it was never committed and closes
// the connection.
func (s *Store) Close() error {
	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil {
			s.Logger.ErrorNs("store", "failed to rollback transaction", log.KV{
				"error": err.Error(),
			})
		}
		s.tx = nil
		s.Logger.WarnNs("store", "transaction rolled back")
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func toWriteResult(res sql.Result) (WriteResult, error) {
	lastID, err := res.LastInsertId()
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to get last insert id: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return WriteResult{
		LastInsertID: lastID,
		RowsAffected: affected,
	}, nil
}
