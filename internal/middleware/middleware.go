// Package middleware wires the Echo middleware chain for the customers API
// and the error handler that renders the error envelope.
package middleware
