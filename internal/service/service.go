// Package service owns the customer use cases: create, lookup and delete.
//
// Repository failures are converted to API errors here, so handlers only
// see *errs.HTTPError values.
package service
