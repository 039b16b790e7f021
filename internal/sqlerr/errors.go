package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotFoundError reports that no row matched ID in the Entity table.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s could not be found", humanizeText(e.Entity), e.ID)
}

// DBFailureError is any other query, connection or decode failure.
//
// Op names the repository operation; PgErr is set when the server
// answered with an error.
type DBFailureError struct {
	Op    string
	Err   error
	PgErr *Error
}

func (e *DBFailureError) Error() string {
	return fmt.Sprintf("database failure in %s: %v", e.Op, e.Err)
}

func (e *DBFailureError) Unwrap() error {
	return e.Err
}

// Wrap classifies err for the repository operation op.
//
// No rows becomes a *NotFoundError for entity/id; everything else becomes a
// *DBFailureError. Already-classified errors are returned unchanged.
func Wrap(err error, op, entity, id string) error {
	if err == nil {
		return nil
	}

	var notFound *NotFoundError
	var failure *DBFailureError
	if errors.As(err, &notFound) || errors.As(err, &failure) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}

	return Failure(err, op)
}

// Failure wraps err as a *DBFailureError without the no-rows check; used
// where an empty result is not an error.
func Failure(err error, op string) error {
	failure := &DBFailureError{Op: op, Err: err}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		failure.PgErr = ConvertPgError(pgerr)
	}
	return failure
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsDBFailure reports whether err is, or wraps, a *DBFailureError.
func IsDBFailure(err error) bool {
	var failure *DBFailureError
	return errors.As(err, &failure)
}

// humanizeText converts snake_case into Title Case: "invitee" -> "Invitee".
func humanizeText(text string) string {
	if text == "" {
		return "Item"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
