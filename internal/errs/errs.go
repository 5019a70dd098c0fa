// Package errs holds the HTTP error envelope returned by every failing
// request, along with the constructors for each status the API produces.
//
// Field-level validation failures travel inside the envelope as FieldError
// values.
package errs
