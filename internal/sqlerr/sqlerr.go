// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into user-friendly messages (e.g., converting
// a "unique violation" into a "Bad Request" error).
package sqlerr

import "fmt"

// Code is a driver-independent classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	InvalidTextValue    Code = "invalid_text_representation"
	NumericOutOfRange   Code = "numeric_value_out_of_range"
	UndefinedTable      Code = "undefined_table"
	QueryCanceled       Code = "query_canceled"
)

// pgCodes maps Postgres SQLSTATE values onto Code.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
var pgCodes = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22P02": InvalidTextValue,
	"22003": NumericOutOfRange,
	"42P01": UndefinedTable,
	"57014": QueryCanceled,
}

// MapCode maps a SQLSTATE onto Code. Unknown states map to Other.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the Postgres severity levels.
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

// MapSeverity maps a Postgres severity string onto Severity.
// Unknown values map to SeverityError.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a normalized database error.
//
// It keeps the original driver error reachable through Unwrap.
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
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
