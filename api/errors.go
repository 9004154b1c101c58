package api

import "errors"

var (
	// ErrMissingPathParameter is returned when a route needs a path parameter
	// the request does not carry.
	ErrMissingPathParameter = errors.New("missing path parameter")

	// ErrBodyNotObject is returned when a create or update body is valid JSON
	// but not an object.
	ErrBodyNotObject = errors.New("request body must be a JSON object")
)
