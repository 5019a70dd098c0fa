// Package handler maps the customer routes onto the service layer.
//
// Handlers never write error responses themselves; a returned error is
// rendered by the global error handler.
package handler
