package app

import "errors"

// ErrMalformedData and related errors describe persistence failures.
var (
	ErrMalformedData = errors.New("malformed task data")
	ErrNilRepository = errors.New("repository is required")
)
