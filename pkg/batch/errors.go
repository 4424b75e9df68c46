package batch

import "errors"

// ErrInvalidPageSize is returned when Scan is given a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")
