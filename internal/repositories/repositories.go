package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/logger"
)

var (
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReferenceNotFound is returned when an insert references a missing row.
	ErrReferenceNotFound = errors.New("referenced row does not exist")
)

// PostgreSQL error codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor returns the request transaction when there is one, else db.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// translateError maps constraint violations onto package errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return ErrDuplicate
		case foreignKeyViolation:
			return ErrReferenceNotFound
		}
	}
	return err
}

// logQuery logs a query on a single line with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
