package ranking

import "errors"

// Sentinel kinds for ranking errors. These allow errors.Is/As from callers.
var (
	// ErrInvalidCount is returned when the requested result count is not
	// a positive number. This is a caller bug, not a runtime condition.
	ErrInvalidCount = errors.New("result count must be positive")
)
