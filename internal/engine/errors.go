package engine

import "errors"

// Error taxonomy for draft operations. Callers classify with errors.Is and
// wrap with fmt.Errorf("%w: ...") for detail.
var (
	// ErrValidation: malformed or out-of-range input, rejected before any
	// state is touched.
	ErrValidation = errors.New("invalid input")

	// ErrConflict: the proposal no longer matches fresh authoritative state
	// (cursor mismatch, player gone, slot unavailable). Safe to retry with
	// recomputed state.
	ErrConflict = errors.New("state conflict")

	// ErrNotFound: no draft exists under the given id.
	ErrNotFound = errors.New("draft not found")

	// ErrCompleted: the draft is terminal; no further picks are possible.
	ErrCompleted = errors.New("draft already complete")

	// ErrExhausted: the remaining pool holds no player the roster can accept.
	// Should not occur with a correctly sized catalog, but is reported rather
	// than fabricating a pick.
	ErrExhausted = errors.New("no eligible player remains")
)
