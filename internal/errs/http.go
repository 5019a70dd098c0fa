package errs

import "strings"

// FieldError points at one invalid request body field, keyed by its JSON
// name: {"field": "email", "error": "is required"}.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the body of every non-2xx response.
//
// Override marks Message as safe to show to end users. Errors is only
// present for validation failures.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"error"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError, so errors.Is(err, &HTTPError{}) tells whether
// err already carries an API response.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
