package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/elien2016/customers/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

// BodyPayload is a Validatable read from a JSON request body.
//
// Subject names the resource in error messages, e.g. "Customer".
type BodyPayload interface {
	Validatable
	Subject() string
}

// CustomValidationError represents a single validation issue for a specific field.
// Used for rules that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

const requiredMessage = "is required"

var validate = newValidator()

// newValidator reports fields by their JSON name so messages match what
// clients sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Path params are bound into `param`-tagged fields. A param that does not
//     parse (e.g. a non-integer id) is reported as 404, like an unmatched route.
//  2. BodyPayload types additionally require a JSON content type (415) and a
//     JSON object body (400).
//  3. payload.Validate() runs; violations become a 400 whose message names
//     the first one and whose field errors list all of them.
func BindAndValidate(c echo.Context, payload Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewNotFoundError("Route not found", false, nil)
	}

	subject := "Request"
	if body, ok := payload.(BodyPayload); ok {
		subject = body.Subject()

		if err := RequireJSON(c); err != nil {
			return err
		}
		if err := DecodeJSON(c, body); err != nil {
			return err
		}
	}

	if err := validateStruct(payload, subject); err != nil {
		return err
	}

	return nil
}

// RequireJSON rejects requests whose Content-Type is not application/json.
// Media type parameters (charset) are accepted; a missing header is not.
func RequireJSON(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return errs.NewUnsupportedMediaTypeError("Content-Type must be " + echo.MIMEApplicationJSON)
	}

	return nil
}

// DecodeJSON reads the request body into payload.
//
// The body must be exactly one JSON object, optionally surrounded by
// whitespace. Unknown keys are ignored.
func DecodeJSON(c echo.Context, payload BodyPayload) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errs.NewBadRequestError("Invalid JSON body", true, nil, nil)
	}

	dec := json.NewDecoder(bytes.NewReader(body))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequestError("Request body is required", true, nil, nil)
		}
		return errs.NewBadRequestError("Invalid JSON body", true, nil, nil)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errs.NewBadRequestError("Invalid JSON body", true, nil, nil)
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return errs.NewBadRequestError(
			fmt.Sprintf("Invalid %s: request body must be a JSON object", payload.Subject()), true, nil, nil)
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return errs.NewBadRequestError(
				fmt.Sprintf("Invalid %s: %s has an invalid type", payload.Subject(), typeErr.Field),
				true, nil, []errs.FieldError{{Field: typeErr.Field, Error: "has an invalid type"}})
		}
		return errs.NewBadRequestError("Invalid JSON body", true, nil, nil)
	}

	return nil
}

// validateStruct calls v.Validate() and converts failures into a 400.
func validateStruct(v Validatable, subject string) *errs.HTTPError {
	err := v.Validate()
	if err == nil {
		return nil
	}

	fieldErrors, ok := extractValidationError(err)
	if !ok {
		return errs.ValidationError(err)
	}

	return errs.NewBadRequestError(headline(subject, fieldErrors[0]), true, nil, fieldErrors)
}

// headline renders the first violation: "Invalid Customer: missing email".
func headline(subject string, first errs.FieldError) string {
	if first.Error == requiredMessage {
		return fmt.Sprintf("Invalid %s: missing %s", subject, first.Field)
	}
	return fmt.Sprintf("Invalid %s: %s %s", subject, first.Field, first.Error)
}

// extractValidationError converts validator or custom errors into field
// errors, in declaration order. ok is false for any other error type.
func extractValidationError(err error) (fieldErrors []errs.FieldError, ok bool) {
	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return fieldErrors, len(fieldErrors) > 0
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = requiredMessage

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s:%s", err.Tag(), err.Param())
			} else {
				msg = err.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return fieldErrors, len(fieldErrors) > 0
}
