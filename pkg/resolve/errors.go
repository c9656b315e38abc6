package resolve

import "errors"

var (
	// ErrNoMatch means the query produced no acceptable match. This is a
	// normal outcome, not a failure; callers decide how to surface it.
	ErrNoMatch = errors.New("no acceptable match")

	// ErrEmptyQuery rejects empty or whitespace-only queries before any
	// scoring happens.
	ErrEmptyQuery = errors.New("empty query")
)
