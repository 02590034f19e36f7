package report

import "errors"

var (
	// ErrValidation marks malformed caller input: bad date/time strings,
	// non-positive zone ids, unknown category values. Never retried.
	ErrValidation = errors.New("invalid input")

	// ErrNoData marks a singular lookup that matched nothing. Listing
	// operations return empty results instead; only single-result
	// operations use this sentinel so callers can tell "no data" apart
	// from a populated zero.
	ErrNoData = errors.New("no matching records")

	// ErrStoreUnavailable marks a visit store failure or timeout. It is
	// retryable and must surface as an error; collapsing it into a zero
	// result would be indistinguishable from genuinely zero visitors.
	ErrStoreUnavailable = errors.New("visit store unavailable")
)
