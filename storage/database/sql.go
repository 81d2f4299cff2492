package database

import (
	"context"
	"database/sql"
	"net"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	invalidText         = "22P02" // eg. a malformed uuid
)

// NewStoreUnavailable wraps a connection failure.
func NewStoreUnavailable(err error) error {
	return core.NewStoreUnavailableError(err)
}

// TranslateError maps driver errors to core errors:
// no rows, foreign key violations and malformed ids to notFound, unique violations to a ConflictError on op,
// connection failures to a StoreUnavailableError. Anything else, and not found without a notFound error, is wrapped with op.
func TranslateError(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound == nil {
		notFound = errors.Wrap(err, op)
	}
	if err == sql.ErrNoRows {
		return notFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return core.NewConflictError(op)
		case foreignKeyViolation, invalidText:
			return notFound
		}
		if pqErr.Code.Class() == "08" { // connection exception
			return NewStoreUnavailable(err)
		}
		return errors.Wrap(err, op)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || err == sql.ErrConnDone || err == context.DeadlineExceeded ||
		strings.Contains(err.Error(), "connection refused") {
		return NewStoreUnavailable(err)
	}
	return errors.Wrap(err, op)
}

// WithTx runs fn in a transaction, committing if it succeeds and rolling back otherwise.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// LocalDay re-reads a TIMESTAMP (without time zone) value as a local wall clock time.
func LocalDay(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.Local)
}

// WallClock formats t's local wall clock for a TIMESTAMP (without time zone) column.
func WallClock(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02 15:04:05.999")
}

func quoteIdent(s string) string   { return pq.QuoteIdentifier(s) }
func quoteLiteral(s string) string { return pq.QuoteLiteral(s) }
