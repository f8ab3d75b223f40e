package model

import "github.com/rotisserie/eris"

// Error taxonomy for the comparison engine. Soft failures (unresolved
// mentions, ambiguous matches, empty result sets) are carried as data in
// Query/ComparisonResult, never as errors.
var (
	// ErrData marks a malformed or inconsistent dataset at load time.
	// Fatal: the load aborts and nothing is stored.
	ErrData = eris.New("invalid dataset")

	// ErrNotFound marks a lookup of a metro id that is not in the store.
	// The resolver never emits unknown ids, so hitting this outside the
	// resolver boundary is a programming error.
	ErrNotFound = eris.New("metro not found")

	// ErrQuery marks input text with no usable tokens. Surfaced to the
	// user as a request to rephrase.
	ErrQuery = eris.New("unusable query")
)
