// Package database opens the Postgres connection pool and provides the
// transaction and error-classification helpers shared by every repository.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
)

//go:embed schema.sql
var schema string

// Postgres SQLSTATE codes surfaced as domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so a statement can run
// inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction. The transaction commits only when fn
// returns nil; any error or panic rolls every statement back.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return Classify(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return Classify(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// Classify maps driver errors onto the apperr taxonomy. Errors that already
// carry a taxonomy sentinel are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		apperr.ErrNotFound, apperr.ErrAccessDenied, apperr.ErrInvalidInput,
		apperr.ErrInsufficientStock, apperr.ErrConflict, apperr.ErrPersistence,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", apperr.ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation, codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperr.ErrConflict, pqErr.Message)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", apperr.ErrInsufficientStock, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
}
