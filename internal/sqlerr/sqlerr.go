// Package sqlerr handles database driver errors.
//
// It classifies errors coming out of pgx into the two failure kinds the
// repositories report (item not found and database failure) and turns
// them into boundary errors with HandleError.
package sqlerr

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a coarse category for a Postgres SQLSTATE.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
	InvalidText         Code = "invalid_text_representation"
	ConnectionFailure   Code = "connection_failure"
	InsufficientRights  Code = "insufficient_privilege"
	QueryCanceled       Code = "query_canceled"
)

// Severity mirrors the severity reported by the server.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a structured view of a *pgconn.PgError used for logging.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (SQLSTATE " + e.DatabaseCode + ")"
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "22P02":
		return InvalidText
	case "42501":
		return InsufficientRights
	case "57014":
		return QueryCanceled
	}
	// Class 08: connection exception.
	if strings.HasPrefix(sqlstate, "08") {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity maps the server severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	}
	return SeverityError
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
