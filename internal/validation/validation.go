// Package validation binds customer payloads and path parameters and turns
// validator failures into the field errors carried by a 400 response.
//
// Struct tags drive the rules; BindAndValidate is the single entry point
// handlers use.
package validation
