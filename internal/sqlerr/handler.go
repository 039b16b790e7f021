package sqlerr

import (
	"errors"

	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/rs/zerolog"
)

// HandleError converts any error into a boundary error.
//
//   - *errs.HTTPError: returned unchanged
//   - *NotFoundError: 400 ITEM_NOT_FOUND for the missing id
//   - anything else: 500 DB_FAILURE with a generic message
func HandleError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return errs.NewNotFoundError(notFound.ID)
	}

	return errs.NewInternalServerError()
}

// LogFields adds the structured database error details of err to e.
func LogFields(e *zerolog.Event, err error) *zerolog.Event {
	var failure *DBFailureError
	if !errors.As(err, &failure) {
		return e
	}

	e = e.Str("db_op", failure.Op)
	if pg := failure.PgErr; pg != nil {
		e = e.
			Str("db_code", string(pg.Code)).
			Str("db_sqlstate", pg.DatabaseCode).
			Str("db_severity", string(pg.Severity)).
			Str("db_table", pg.TableName).
			Str("db_column", pg.ColumnName).
			Str("db_constraint", pg.ConstraintName)
	}
	return e
}
