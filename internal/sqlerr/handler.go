package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/elien2016/customers/internal/errs"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// It returns the Code of the first *sqlerr.Error in err's chain, the
// mapped SQLSTATE of a raw *pgconn.PgError, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// ConvertPgError converts a raw Postgres error into a sqlerr.Error.
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

// generateErrorCode creates application error codes from DB errors.
//
// Output format is <DOMAIN>_<ACTION>, e.g.
//
//	customers + UniqueViolation => CUSTOMER_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "CUSTOMERS" -> "CUSTOMER".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextValue, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by HandleError when the column is known.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidTextValue, NumericOutOfRange:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column data.
//
// Priority:
//  1. A column ending in "_id" ("customer_id" -> "Customer").
//  2. The table name, singularized if it ends with "s".
//  3. "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case ("first_name" -> "First Name").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a unique
// constraint name. Supported conventions:
//
//  1. "unique_<table>_<column>" (unique_customers_email -> "email")
//  2. "<table>_<column>_(key|ukey)" (customers_email_key -> "email")
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a persistence error into an *errs.HTTPError.
//
// Constraint and format violations become 400s, a missing row becomes a
// 404 and everything else a 500. An *errs.HTTPError is returned unchanged.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		return fromPgError(ConvertPgError(pgErr))
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return fromNoRows(err)
	default:
		return errs.NewInternalServerError()
	}
}

func fromPgError(sqlErr *Error) error {
	code := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	message := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(message, false, &code, nil)
	case UniqueViolation:
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			message = strings.ReplaceAll(message, "identifier", humanizeText(column))
		}
		return errs.NewBadRequestError(message, true, &code, nil)
	case NotNullViolation:
		return errs.NewBadRequestError(message, true, &code, []errs.FieldError{
			{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"},
		})
	case CheckViolation, InvalidTextValue, NumericOutOfRange:
		return errs.NewBadRequestError(message, true, &code, nil)
	default:
		return errs.NewInternalServerError()
	}
}

// fromNoRows names the entity when err was wrapped as "table:<name>: ...".
func fromNoRows(err error) error {
	const tablePrefix = "table:"

	_, rest, found := strings.Cut(err.Error(), tablePrefix)
	if !found {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}
	table, _, _ := strings.Cut(rest, ":")
	return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table, "")), true, nil)
}
