package domain

import "errors"

var (
	// ErrFetch is returned when reading the catalog from the data store fails
	ErrFetch = errors.New("catalog fetch failed")

	// ErrSchema is returned when the data store response cannot be read as a record list
	ErrSchema = errors.New("unexpected catalog response shape")

	// ErrSubmit is returned when creating a record in the data store fails
	ErrSubmit = errors.New("submission failed")

	// ErrNotFound is returned when a record id is not in the catalog
	ErrNotFound = errors.New("standard not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrPreferenceNotFound is returned when a preference is unset or expired
	ErrPreferenceNotFound = errors.New("preference not set")
)
