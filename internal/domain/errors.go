package domain

import "errors"

var (
	// ErrStorageUnavailable marks a failure to reach the database or to run
	// a query against it. Callers surface it as a server error; it is never
	// retried internally.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSchemaMismatch marks data whose shape does not match MealOut.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
