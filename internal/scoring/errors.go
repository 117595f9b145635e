package scoring

import "errors"

// Error kinds returned by the engine and the stores. Call sites wrap them with
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is retryable: the aggregate changed underneath the caller.
	ErrConflict = errors.New("conflict")
)
