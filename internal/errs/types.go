package errs

import (
	"net/http"
)

// statusCode derives the default machine code from a status,
// e.g. 404 => "Not Found" => "NOT_FOUND".
func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)

	// Custom codes are used as-is.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports an optional custom code, like NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewUnsupportedMediaTypeError creates a 415 Unsupported Media Type HTTPError.
func NewUnsupportedMediaTypeError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnsupportedMediaType),
		Message:  message,
		Status:   http.StatusUnsupportedMediaType,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}
